package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/notelens/notelens"
	"github.com/notelens/notelens/core"
)

type noteSeed struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Categories []string `json:"categories,omitempty"`
	CreatedAt  string   `json:"created_at,omitempty"`
}

var samples = []noteSeed{
	{Title: "Quarterly budget", Content: "Q3 numbers: marketing up 12%, infra flat, hiring frozen until October.", Categories: []string{"work", "finance"}},
	{Title: "Standup notes", Content: "Deploy blocked on the migration review. Ana picks up the flaky cache test.", Categories: []string{"work"}},
	{Title: "Grocery list", Content: "Oat milk, basil, pine nuts, parmesan, sourdough starter flour.", Categories: []string{"home"}},
	{Title: "Pasta al limone", Content: "Zest two lemons into warm cream, toss with spaghetti water off the heat.", Categories: []string{"recipes"}},
	{Title: "Book club", Content: "Next month we read The Left Hand of Darkness. Host: Priya, snacks: me.", Categories: []string{"personal"}},
	{Title: "Server rack move", Content: "Colo migration window is the first weekend of November. Label every cable.", Categories: []string{"work", "infra"}},
	{Title: "Gift ideas", Content: "Dad: birding scope. Sam: ceramics class voucher. Mia: mechanical keyboard.", Categories: []string{"personal"}},
	{Title: "Marathon training", Content: "Week 6: two easy 8k runs, hill repeats Thursday, 24k long run Sunday.", Categories: []string{"health"}},
	{Title: "Dentist", Content: "Cleaning booked for the 14th at 9:30, ask about the night guard.", Categories: []string{"health"}},
	{Title: "Garden plan", Content: "Move the rosemary to the south bed, start tomatoes indoors in March.", Categories: []string{"home", "garden"}},
	{Title: "Interview debrief", Content: "Strong on systems design, shaky on the concurrency questions. Lean hire.", Categories: []string{"work"}},
	{Title: "Tax prep", Content: "Collect 1099s, the home office square footage, and the charity receipts.", Categories: []string{"finance"}},
	{Title: "Trip to Lisbon", Content: "Flights booked for May. Want: Alfama walk, LX Factory, day trip to Sintra.", Categories: []string{"travel"}},
	{Title: "Reading list", Content: "Designing Data-Intensive Applications, The Sympathizer, Piranesi.", Categories: []string{"personal"}},
	{Title: "Car service", Content: "Brake pads at 80%, rotate tires next oil change, quote was 240.", Categories: []string{"home"}},
	{Title: "Sourdough log", Content: "Fed at 8am, 78% hydration, oven spring much better with the dutch oven lid.", Categories: []string{"recipes"}},
	{Title: "One-on-one with Jo", Content: "Wants to move toward the platform team next quarter. Draft a growth plan.", Categories: []string{"work"}},
	{Title: "Insurance renewal", Content: "Home policy renews in February, get two competing quotes this time.", Categories: []string{"finance", "home"}},
	{Title: "Piano practice", Content: "Bach invention 8 hands together at 60bpm, scales in thirds daily.", Categories: []string{"personal"}},
	{Title: "Weekend hike", Content: "Eagle Ridge loop, 14k, start early to beat the heat, bring the water filter.", Categories: []string{"health", "travel"}},
}

var seedFileName = flag.String("src", "", "JSON file of seed notes")
var dbPath = flag.String("db", "./notelens_db", "path to BadgerDB database directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// seedsFromFile reads a JSON array of seed notes.
func seedsFromFile(filename string) ([]noteSeed, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var seeds []noteSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, err
	}
	return seeds, nil
}

func main() {
	engine, err := notelens.Open(*dbPath)
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	hooks, err := engine.NewHooks()
	if err != nil {
		panic(err)
	}
	defer hooks.Release()

	ctx := context.Background()

	seeds := samples
	if *seedFileName != "" {
		seeds, err = seedsFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	}

	created := 0
	for _, seed := range seeds {
		note := &core.Note{
			Title:       seed.Title,
			Content:     seed.Content,
			CategoryIDs: seed.Categories,
		}
		if seed.CreatedAt != "" {
			ts, err := time.Parse(time.RFC3339, seed.CreatedAt)
			if err != nil {
				slog.Warn("skipping seed with bad created_at", "title", seed.Title, "err", err)
				continue
			}
			note.CreatedAt = ts.UTC()
		}

		stored, err := engine.Notes().CreateNote(ctx, note)
		if err != nil {
			panic(err)
		}
		if err := hooks.OnNoteCreated(stored); err != nil {
			panic(err)
		}
		created++
	}

	// Indexing runs async on the hook pool; wait for it to drain
	deadline := time.Now().Add(2 * time.Minute)
	for time.Now().Before(deadline) {
		count, err := engine.IndexCount(ctx)
		if err != nil {
			panic(err)
		}
		if count >= created {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	slog.Info("seeded notes", "count", created, "db", *dbPath)
}
