package postgres

import (
	"strings"
	"testing"
)

func TestDecodeRawRows(t *testing.T) {
	rows := []rawRowModel{
		{ID: 1, Payload: []byte(`{"name":"Persib Bandung FC","founded":1933,"venue":{"name":"GBLA"}}`)},
		{ID: 2, Payload: nil},
		{ID: 3, Payload: []byte(`null`)},
		{ID: 4, Payload: []byte(`{"displayName":"Arema"}`)},
	}

	got, err := decodeRawRows(rawTeamRowsTable, rows)
	if err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 payloads, got %d", len(got))
	}
	if got[0]["name"] != "Persib Bandung FC" {
		t.Fatalf("unexpected first payload: %v", got[0])
	}
	if _, ok := got[0]["venue"].(map[string]any); !ok {
		t.Fatalf("expected nested object, got %T", got[0]["venue"])
	}
	if got[1]["displayName"] != "Arema" {
		t.Fatalf("unexpected second payload: %v", got[1])
	}
}

func TestDecodeRawRows_InvalidPayload(t *testing.T) {
	_, err := decodeRawRows(rawGameRowsTable, []rawRowModel{{ID: 9, Payload: []byte(`{"home":`)}})
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if !strings.Contains(err.Error(), "raw_game_rows payload id=9") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListRawRowsQueryFor(t *testing.T) {
	query := listRawRowsQueryFor(rawGameRowsTable)
	if !strings.Contains(query, "FROM raw_game_rows") {
		t.Fatalf("unexpected query: %s", query)
	}
	if !strings.Contains(query, "deleted_at IS NULL") {
		t.Fatalf("expected soft-delete filter: %s", query)
	}
}
