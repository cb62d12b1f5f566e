package validation

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestSchemaValidator_UnclaimedRewards(t *testing.T) {
	validator := NewSchemaValidator()

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{
			name:      "valid rewards",
			data:      `[{"id": 1, "levels_earned": 3, "coins_earned": 50, "items_earned": [{"itemName": "Potion"}]}]`,
			wantError: false,
		},
		{
			name:      "null items",
			data:      `[{"id": 2, "levels_earned": 0, "coins_earned": 0, "items_earned": null}]`,
			wantError: false,
		},
		{
			name:      "snake_case item name",
			data:      `[{"id": 3, "levels_earned": 1, "coins_earned": 1, "items_earned": [{"item_name": "Ether"}]}]`,
			wantError: false,
		},
		{
			name:      "empty list",
			data:      `[]`,
			wantError: false,
		},
		{
			name:      "missing levels",
			data:      `[{"id": 1, "coins_earned": 50}]`,
			wantError: true,
			errorMsg:  "required",
		},
		{
			name:      "string coins",
			data:      `[{"id": 1, "levels_earned": 1, "coins_earned": "lots"}]`,
			wantError: true,
			errorMsg:  "coins_earned",
		},
		{
			name:      "item without any name",
			data:      `[{"id": 1, "levels_earned": 1, "coins_earned": 1, "items_earned": [{"quantity": 2}]}]`,
			wantError: true,
			errorMsg:  "items_earned",
		},
		{
			name:      "item with blank name",
			data:      `[{"id": 1, "levels_earned": 1, "coins_earned": 1, "items_earned": [{"name": ""}]}]`,
			wantError: true,
			errorMsg:  "items_earned",
		},
		{
			name:      "blank name with camelCase fallback",
			data:      `[{"id": 1, "levels_earned": 1, "coins_earned": 1, "items_earned": [{"name": "", "itemName": "Potion"}]}]`,
			wantError: false,
		},
		{
			name:      "invalid JSON",
			data:      `[{"id": }]`,
			wantError: true,
			errorMsg:  "parse JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateBytes([]byte(tt.data), SchemaUnclaimedRewards)

			if tt.wantError {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error to contain %q, got: %v", tt.errorMsg, err)
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestSchemaValidator_Roster(t *testing.T) {
	validator := NewSchemaValidator()

	if err := validator.ValidateBytes([]byte(`[{"id": 1, "name": "Ash", "level": 3}]`), SchemaRoster); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := validator.ValidateBytes([]byte(`[{"name": "Ash"}]`), SchemaRoster); err == nil {
		t.Error("Expected error for trainer without id")
	}
	if err := validator.ValidateBytes([]byte(`{"id": 1}`), SchemaRoster); err == nil {
		t.Error("Expected error for object instead of list")
	}
}

func TestSchemaValidator_MissingSchema(t *testing.T) {
	validator := NewSchemaValidator()

	err := validator.ValidateBytes([]byte(`{}`), "nonexistent.schema.json")
	if err == nil {
		t.Fatal("Expected error for non-existent schema")
	}
	if !strings.Contains(err.Error(), "failed to load schema") {
		t.Errorf("Expected 'failed to load schema' error, got: %v", err)
	}
}

func TestSchemaValidator_CachesCompiledSchemas(t *testing.T) {
	fsys := fstest.MapFS{
		"test.schema.json": {Data: []byte(`{
			"$schema": "http://json-schema.org/draft-07/schema#",
			"type": "object",
			"properties": {"status": {"type": "string", "enum": ["active", "inactive"]}}
		}`)},
	}
	v := NewSchemaValidatorFS(fsys).(*schemaValidator)

	data := []byte(`{"status": "active"}`)
	if err := v.ValidateBytes(data, "test.schema.json"); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	if len(v.schemas) != 1 {
		t.Errorf("Expected 1 cached schema, got %d", len(v.schemas))
	}

	if err := v.ValidateBytes(data, "test.schema.json"); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if len(v.schemas) != 1 {
		t.Errorf("Expected 1 cached schema after second validation, got %d", len(v.schemas))
	}

	if err := v.ValidateBytes([]byte(`{"status": "deleted"}`), "test.schema.json"); err == nil {
		t.Error("Expected enum violation")
	}
}
