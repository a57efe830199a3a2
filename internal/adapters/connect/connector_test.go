package connect

import (
	"context"
	"errors"
	"testing"

	"docdrift/internal/adapters/filesystem"
	"docdrift/internal/application"
	"docdrift/internal/domain"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		url     string
		want    Kind
		wantErr bool
	}{
		{url: "http://localhost:8529", want: KindArango},
		{url: "HTTPS://db.example.com", want: KindArango},
		{url: "tcp://localhost:8529", want: KindArango},
		{url: "mongodb://localhost:27017", want: KindMongo},
		{url: "mongodb+srv://cluster0.example.net", want: KindMongo},
		{url: "file:///var/dumps/prod", want: KindDump},
		{url: "redis://localhost:6379", wantErr: true},
		{url: "localhost", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := KindOf(domain.Connection{URL: tt.url})
			if tt.wantErr {
				if !errors.Is(err, application.ErrUnsupportedDB) {
					t.Errorf("expected ErrUnsupportedDB, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("KindOf(%s) = %s, want %s", tt.url, got, tt.want)
			}
		})
	}
}

func TestDumpDir(t *testing.T) {
	tests := map[string]string{
		"file:///var/dumps/prod": "/var/dumps/prod",
		"file://dumps/prod":      "dumps/prod",
		"file:dumps/prod":        "dumps/prod",
	}
	for in, want := range tests {
		got, err := DumpDir(in)
		if err != nil {
			t.Fatalf("DumpDir(%s) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("DumpDir(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestOpen_DumpDirectory(t *testing.T) {
	dir := t.TempDir()
	db, err := Connector{}.Open(context.Background(), domain.Connection{Name: "snap", URL: "file://" + dir})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, ok := db.(*filesystem.Repository); !ok {
		t.Errorf("expected *filesystem.Repository, got %T", db)
	}
}
