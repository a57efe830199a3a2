package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"docdrift/internal/domain"
	"docdrift/internal/ports"
)

const phpHead = `<?php

use Database\ArangoMigration;
use ArangoDBClient\Collection as ArangoCollection;
use ArangoDBClient\Document as ArangoDocument;

// Auto-generated migration file.
return new class extends ArangoMigration
{
    /**
     * Run the migrations.
     */
    public function up(): void
    {
`

const phpFooter = `    }

    /**
     * Reverse the migrations.
     */
    public function down(): void
    {
    }
};
`

// PHP renders an ArangoDB PHP migration class straight from the diff
// records, without going through the action plan
type PHP struct{}

var _ ports.Renderer = PHP{}

// NewPHP creates the fixed-format PHP renderer
func NewPHP() PHP {
	return PHP{}
}

// Render writes the migration class
func (PHP) Render(w io.Writer, in ports.RenderInput) error {
	bw := bufio.NewWriter(w)
	p := &phpWriter{w: bw}

	p.raw(phpHead)
	// drops first so a collection whose type changed is re-created
	for _, c := range in.Delta.ToDelete {
		p.line("$this->collectionHandler->drop(%s);", phpString(c.Name))
	}
	for _, c := range in.Delta.ToCreate {
		p.createCollection(c)
	}
	for _, d := range in.Diffs {
		if err := p.records(d.Collection.Name, d.Records); err != nil {
			return err
		}
	}
	p.raw(phpFooter)

	if p.err != nil {
		return p.err
	}
	return bw.Flush()
}

type phpWriter struct {
	w   *bufio.Writer
	err error
}

func (p *phpWriter) raw(s string) {
	if p.err == nil {
		_, p.err = p.w.WriteString(s)
	}
}

func (p *phpWriter) line(format string, args ...any) {
	p.raw("        " + fmt.Sprintf(format, args...) + "\n")
}

func (p *phpWriter) createCollection(c domain.Collection) {
	kind := "ArangoCollection::TYPE_DOCUMENT"
	if c.Type == domain.CollectionTypeEdge {
		kind = "ArangoCollection::TYPE_EDGE"
	}
	p.line("$collection = new ArangoCollection();")
	p.line("$collection->setName(%s);", phpString(c.Name))
	p.line("$collection->setType(%s);", kind)
	p.line("$this->collectionHandler->create($collection);")
	p.raw("\n")
}

// records emits one statement per whole-document record and one replacing
// insert per document with field-level changes
func (p *phpWriter) records(collection string, records []domain.Record) error {
	replaced := make(map[string]bool)
	for _, rec := range records {
		switch {
		case rec.Kind == domain.RecordAdded && rec.Path.IsDocument():
			if err := p.insert(collection, rec.New, rec.Path.DocumentID(), "ignore"); err != nil {
				return err
			}
		case rec.Kind == domain.RecordRemoved && rec.Path.IsDocument():
			example, err := phpJSON(rec.Old)
			if err != nil {
				return err
			}
			p.line("$this->collectionHandler->removeByExample(%s, json_decode(%s, true), ['limit' => 1]);",
				phpString(collection), example)
			p.raw("\n")
		case rec.Kind >= domain.RecordAdded && rec.Kind <= domain.RecordValueChanged:
			id := rec.Path.DocumentID()
			if replaced[id] || rec.Target == nil {
				continue
			}
			replaced[id] = true
			if err := p.insert(collection, rec.Target, id, "replace"); err != nil {
				return err
			}
		default:
			return &domain.UnsupportedDiffActionError{Action: rec.Kind.String(), Path: rec.Path.String()}
		}
	}
	return nil
}

func (p *phpWriter) insert(collection string, value any, id, overwrite string) error {
	body, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("document %s has no object body", id)
	}
	withKey := make(map[string]any, len(body)+1)
	for k, v := range body {
		withKey[k] = v
	}
	withKey[domain.FieldKey] = documentKey(id)

	doc, err := phpJSON(withKey)
	if err != nil {
		return err
	}
	p.line("$document = ArangoDocument::createFromArray(json_decode(%s, true));", doc)
	p.line("$this->documentHandler->insert(%s, $document, ['overwriteMode' => %s]);",
		phpString(collection), phpString(overwrite))
	p.raw("\n")
	return nil
}

// phpJSON encodes v as JSON inside a single-quoted PHP string literal
func phpJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return phpString(string(b)), nil
}

func phpString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
