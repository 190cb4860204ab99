package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yacademy/researchsite/internal/db"
)

// Store persists a Corpus as a SQLite snapshot so the server and the
// terminal reader can start without re-rendering markdown.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Save replaces the stored snapshot with c.
func (s *Store) Save(ctx context.Context, c *Corpus) error {
	if c == nil || len(c.Records) == 0 {
		return ErrNoContent
	}
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM search_entries`,
			`DELETE FROM page_sections`,
			`DELETE FROM pages`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("clearing snapshot: %w", err)
			}
		}

		for _, r := range c.Records {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO pages (slug, title, category, section, sort_order, description, content_html, markdown)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				r.Slug, r.Title, r.Category, r.Section, r.Order, r.Description, r.ContentHTML, r.Markdown)
			if err != nil {
				return fmt.Errorf("inserting page %s: %w", r.Slug, err)
			}
			for i, sec := range r.Sections {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO page_sections (slug, position, title, anchor, content)
					VALUES (?, ?, ?, ?, ?)`,
					r.Slug, i, sec.Title, sec.Anchor, sec.Content)
				if err != nil {
					return fmt.Errorf("inserting section %d of %s: %w", i, r.Slug, err)
				}
			}
		}

		for i, e := range c.SearchIndex {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO search_entries (position, id, type, title, page_title, path, category, content, search_text)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				i, e.ID, string(e.Type), e.Title, e.PageTitle, e.Path, e.Category, e.Content, e.SearchText)
			if err != nil {
				return fmt.Errorf("inserting search entry %s: %w", e.ID, err)
			}
		}
		return nil
	})
}

// Load reads the whole snapshot back. Records keep their stored order and
// the search index keeps its original positions.
func (s *Store) Load(ctx context.Context) (*Corpus, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, title, category, section, sort_order, description, content_html, markdown
		FROM pages ORDER BY sort_order, slug`)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Slug, &r.Title, &r.Category, &r.Section, &r.Order,
			&r.Description, &r.ContentHTML, &r.Markdown); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()
	if len(records) == 0 {
		return nil, fmt.Errorf("%w in snapshot %s", ErrNoContent, s.db.Path())
	}

	sections, err := s.sections(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Sections = sections[records[i].Slug]
	}

	index, err := s.searchEntries(ctx)
	if err != nil {
		return nil, err
	}
	return &Corpus{Records: records, SearchIndex: index}, nil
}

// Page returns a single stored page. It returns db.ErrNotFound when no page
// has the slug.
func (s *Store) Page(ctx context.Context, slug string) (Record, error) {
	var r Record
	err := s.db.QueryRowContext(ctx, `
		SELECT slug, title, category, section, sort_order, description, content_html, markdown
		FROM pages WHERE slug = ?`, slug).Scan(&r.Slug, &r.Title, &r.Category, &r.Section,
		&r.Order, &r.Description, &r.ContentHTML, &r.Markdown)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("page %q: %w", slug, db.ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("querying page %q: %w", slug, err)
	}
	sections, err := s.sections(ctx, slug)
	if err != nil {
		return Record{}, err
	}
	r.Sections = sections[slug]
	return r, nil
}

// sections groups stored sections by page slug. An empty slug loads all.
func (s *Store) sections(ctx context.Context, slug string) (map[string][]Section, error) {
	query := `SELECT slug, title, anchor, content FROM page_sections`
	var args []any
	if slug != "" {
		query += ` WHERE slug = ?`
		args = append(args, slug)
	}
	query += ` ORDER BY slug, position`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]Section)
	for rows.Next() {
		var owner string
		var sec Section
		if err := rows.Scan(&owner, &sec.Title, &sec.Anchor, &sec.Content); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		out[owner] = append(out[owner], sec)
	}
	return out, rows.Err()
}

func (s *Store) searchEntries(ctx context.Context) ([]SearchEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, title, page_title, path, category, content, search_text
		FROM search_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying search entries: %w", err)
	}
	defer rows.Close()

	var out []SearchEntry
	for rows.Next() {
		var e SearchEntry
		var typ string
		if err := rows.Scan(&e.ID, &typ, &e.Title, &e.PageTitle, &e.Path,
			&e.Category, &e.Content, &e.SearchText); err != nil {
			return nil, fmt.Errorf("scanning search entry: %w", err)
		}
		e.Type = EntryType(typ)
		out = append(out, e)
	}
	return out, rows.Err()
}
