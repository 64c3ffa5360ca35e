// Copyright 2025 Notelens Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package notelens

import (
	"context"
	"io"
	"log/slog"

	"github.com/notelens/notelens/ai"
	"github.com/notelens/notelens/ai/openai"
	"github.com/notelens/notelens/core"
	"github.com/notelens/notelens/index"
	"github.com/notelens/notelens/maintain"
	"github.com/notelens/notelens/search"
	"github.com/notelens/notelens/storage"
	"github.com/notelens/notelens/storage/badger"
)

// Engine wires the note store, vector index, AI provider and search
// pipeline into a single handle.
type Engine struct {
	backend   *badger.Backend
	indexRepo storage.IndexRepository
	noteRepo  storage.NoteRepository
	provider  ai.AIProvider
	index     *index.Index
	searcher  *search.Searcher
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
}

// WithAIConfig overrides the default AI configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider, bypassing the configured
// one. Intended for tests.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the storage backend in memory, ignoring the file path.
func WithInMemory() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// Open creates an Engine backed by the database at filePath.
func Open(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	indexRepo := badger.NewIndexRepository(backend)
	noteRepo := badger.NewNoteRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	ix, err := index.New(indexRepo, provider.Embedder())
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	searcher, err := search.NewSearcher(indexRepo, provider)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:   backend,
		indexRepo: indexRepo,
		noteRepo:  noteRepo,
		provider:  provider,
		index:     ix,
		searcher:  searcher,
		logger:    slog.Default(),
	}, nil
}

// Close releases the AI provider and storage.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Search runs a natural-language query against the index.
func (e *Engine) Search(ctx context.Context, query string, limit int) ([]*core.ScoredResult, error) {
	return e.searcher.Search(ctx, query, limit)
}

// IndexNote embeds a note's searchable text and stores it in the index.
// The returned bool reports whether the note was indexed.
func (e *Engine) IndexNote(ctx context.Context, note *core.Note) (bool, error) {
	return e.index.Upsert(ctx, note.ID, note.SearchText(), maintain.NoteMetadata(note))
}

// RemoveFromIndex removes a note's index entry. Absent IDs are a no-op.
func (e *Engine) RemoveFromIndex(ctx context.Context, id string) error {
	return e.index.Delete(ctx, id)
}

// RebuildIndex reindexes every stored note and returns how many were
// indexed. Progress is written to the given writer; nil discards it.
func (e *Engine) RebuildIndex(ctx context.Context, clearFirst bool, progress io.Writer) (int, error) {
	rebuilder, err := maintain.NewRebuilder(e.noteRepo, e.index, nil, progress)
	if err != nil {
		return 0, err
	}
	return rebuilder.Run(ctx, clearFirst)
}

// IndexCount returns the number of indexed documents.
func (e *Engine) IndexCount(ctx context.Context) (int, error) {
	return e.index.Count(ctx)
}

// Notes returns the note repository.
func (e *Engine) Notes() storage.NoteRepository {
	return e.noteRepo
}

// Index returns the vector index.
func (e *Engine) Index() *index.Index {
	return e.index
}

// NewSearcher builds a searcher with custom options over the engine's
// repositories and provider.
func (e *Engine) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(e.indexRepo, e.provider, opts...)
}

// NewRebuilder builds a rebuilder with custom configuration.
func (e *Engine) NewRebuilder(config *maintain.Config, progress io.Writer) (*maintain.Rebuilder, error) {
	return maintain.NewRebuilder(e.noteRepo, e.index, config, progress)
}

// NewHooks builds lifecycle hooks that keep the index in sync as notes
// change. The caller owns the hooks and must Release them.
func (e *Engine) NewHooks(opts ...maintain.HooksOption) (*maintain.Hooks, error) {
	return maintain.NewHooks(e.index, opts...)
}
