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


package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Well-known metadata keys attached to indexed documents.
const (
	MetaTitle       = "title"
	MetaCreatedAt   = "created_at"
	MetaUpdatedAt   = "updated_at"
	MetaCategoryIDs = "category_ids"
)

// EncodeMetadata converts structured metadata into the string-valued form
// stored on indexed documents. Strings pass through unchanged, timestamps
// become RFC 3339, and lists and maps are JSON-encoded.
func EncodeMetadata(meta map[string]any) map[string]string {
	if meta == nil {
		return nil
	}

	encoded := make(map[string]string, len(meta))
	for key, value := range meta {
		switch v := value.(type) {
		case string:
			encoded[key] = v
		case time.Time:
			encoded[key] = v.Format(time.RFC3339Nano)
		case []string, []any, map[string]any, map[string]string:
			data, err := json.Marshal(v)
			if err != nil {
				encoded[key] = fmt.Sprintf("%v", v)
				continue
			}
			encoded[key] = string(data)
		default:
			encoded[key] = fmt.Sprintf("%v", v)
		}
	}
	return encoded
}

// DecodeMetadata restores structured values from stored metadata. Only
// values that look like JSON arrays or objects are decoded; everything
// else stays a string. Decoding is symmetric with EncodeMetadata for
// lists and maps.
func DecodeMetadata(meta map[string]string) map[string]any {
	if meta == nil {
		return nil
	}

	decoded := make(map[string]any, len(meta))
	for key, value := range meta {
		trimmed := strings.TrimSpace(value)
		if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
			var structured any
			if err := json.Unmarshal([]byte(trimmed), &structured); err == nil {
				decoded[key] = structured
				continue
			}
		}
		decoded[key] = value
	}
	return decoded
}
