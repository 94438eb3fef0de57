package main

import (
	"reflect"
	"testing"
)

func TestParseEntities(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]any
		wantErr bool
	}{
		{"none", nil, map[string]any{}, false},
		{"string", []string{"room=kitchen"}, map[string]any{"room": "kitchen"}, false},
		{"number", []string{"minutes=5"}, map[string]any{"minutes": float64(5)}, false},
		{"bool", []string{"loud=true"}, map[string]any{"loud": true}, false},
		{"value with equals", []string{"expr=a=b"}, map[string]any{"expr": "a=b"}, false},
		{"empty value", []string{"label="}, map[string]any{"label": ""}, false},
		{"null stays a string", []string{"v=null"}, map[string]any{"v": "null"}, false},
		{"last wins", []string{"room=a", "room=b"}, map[string]any{"room": "b"}, false},
		{"missing equals", []string{"room"}, nil, true},
		{"empty key", []string{"=x"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEntities(tt.pairs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseEntities() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseEntities() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"on", true, false},
		{"ON", true, false},
		{"off", false, false},
		{"true", true, false},
		{"0", false, false},
		{"mute", true, false},
		{"unmute", false, false},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		got, err := parseSwitch(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSwitch(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSwitch(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseVolume(t *testing.T) {
	tests := []struct {
		in      string
		current int
		want    int
		wantErr bool
	}{
		{"40", 10, 40, false},
		{"+10", 50, 60, false},
		{"-10", 50, 40, false},
		{"+30", 90, 100, false},
		{"-30", 10, 0, false},
		{"150", 0, 150, false},
		{"loud", 0, 0, true},
	}

	for _, tt := range tests {
		got, err := parseVolume(tt.in, tt.current)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseVolume(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseVolume(%q, %d) = %d, want %d", tt.in, tt.current, got, tt.want)
		}
	}
}

func TestParseConfigDocument(t *testing.T) {
	cfg, err := parseConfigDocument([]byte(`{"tts":{"voice":"amy"}}`))
	if err != nil {
		t.Fatalf("parseConfigDocument() error = %v", err)
	}
	if _, ok := cfg["tts"]; !ok {
		t.Errorf("cfg = %v", cfg)
	}

	for _, bad := range []string{`[1,2]`, `null`, `not json`, `"text"`} {
		if _, err := parseConfigDocument([]byte(bad)); err == nil {
			t.Errorf("parseConfigDocument(%s) should fail", bad)
		}
	}
}
