package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/GrantCuster/extra-grantcuster-com/config"
	"github.com/GrantCuster/extra-grantcuster-com/server/util"
	storageutil "github.com/GrantCuster/extra-grantcuster-com/storage/util"
)

type placeholderStyle int

const (
	placeholderQuestion placeholderStyle = iota
	placeholderDollar
)

type SQLRecordStore struct {
	cfg         *config.SqlRecordsStrategy
	db          *sql.DB
	posts       string
	tags        string
	postTags    string
	placeholder placeholderStyle
}

func NewSQLRecordStore(cfg *config.SqlRecordsStrategy) (*SQLRecordStore, error) {
	store, err := newSQLRecordStoreWithDB(cfg, nil)
	if err != nil {
		return nil, err
	}

	driverName, err := resolveSQLDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, err
	}

	store.db = db

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func newSQLRecordStoreWithDB(cfg *config.SqlRecordsStrategy, db *sql.DB) (*SQLRecordStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("records sql config is nil")
	}

	prefix := "extra"
	if cfg.TablePrefix != nil {
		prefix = *cfg.TablePrefix
	}

	placeholder, err := detectPlaceholderStyle(cfg.Driver)
	if err != nil {
		return nil, err
	}

	return &SQLRecordStore{
		cfg:         cfg,
		db:          db,
		posts:       storageutil.DeriveTableName(prefix, "posts"),
		tags:        storageutil.DeriveTableName(prefix, "tags"),
		postTags:    storageutil.DeriveTableName(prefix, "post_tags"),
		placeholder: placeholder,
	}, nil
}

func detectPlaceholderStyle(driver string) (placeholderStyle, error) {
	driverName, err := resolveSQLDriverName(driver)
	if err != nil {
		return placeholderQuestion, err
	}

	if driverName == "pgx" {
		return placeholderDollar, nil
	}

	return placeholderQuestion, nil
}

func resolveSQLDriverName(driver string) (string, error) {
	switch strings.ToLower(driver) {
	case "postgres":
		return "pgx", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported sql driver %q", driver)
	}
}

// rebind rewrites ? placeholders to $1..$n for postgres.
func (rs *SQLRecordStore) rebind(query string) string {
	if rs.placeholder == placeholderQuestion {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

func (rs *SQLRecordStore) initSchema(ctx context.Context) error {
	for _, query := range rs.schemaQueries() {
		if _, err := rs.db.ExecContext(ctx, query); err != nil {
			return err
		}
	}

	return nil
}

func (rs *SQLRecordStore) schemaQueries() []string {
	idColumn := "id BIGINT AUTO_INCREMENT PRIMARY KEY"
	if rs.placeholder == placeholderDollar {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
%s,
title TEXT NOT NULL,
content TEXT NOT NULL,
slug VARCHAR(255) NOT NULL UNIQUE,
created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`, rs.posts, idColumn),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
%s,
name VARCHAR(255) NOT NULL UNIQUE
)`, rs.tags, idColumn),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
post_id BIGINT NOT NULL,
tag_id BIGINT NOT NULL,
PRIMARY KEY (post_id, tag_id)
)`, rs.postTags),
	}
}

func (rs *SQLRecordStore) CreatePost(ctx context.Context, p NewPost) (*Post, error) {
	now := time.Now()

	slug := p.Slug
	if slug == "" {
		slug = util.PostSlug(p.Title, now)
	}

	tx, err := rs.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	id, err := rs.insertPost(ctx, tx, p, slug, now)
	if err != nil {
		return nil, err
	}

	for _, tag := range p.Tags {
		tagID, err := rs.upsertTag(ctx, tx, tag)
		if err != nil {
			return nil, err
		}

		query := rs.rebind(fmt.Sprintf("INSERT INTO %s (post_id, tag_id) VALUES (?, ?)", rs.postTags))
		if _, err := tx.ExecContext(ctx, query, id, tagID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Post{
		ID:        id,
		Title:     p.Title,
		Content:   p.Content,
		Slug:      slug,
		Tags:      append([]string(nil), p.Tags...),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (rs *SQLRecordStore) insertPost(ctx context.Context, tx *sql.Tx, p NewPost, slug string, now time.Time) (int64, error) {
	if rs.placeholder == placeholderDollar {
		query := rs.rebind(fmt.Sprintf(
			"INSERT INTO %s (title, content, slug, created_at, updated_at) VALUES (?, ?, ?, ?, ?) RETURNING id",
			rs.posts))

		var id int64
		if err := tx.QueryRowContext(ctx, query, p.Title, p.Content, slug, now, now).Scan(&id); err != nil {
			return 0, err
		}

		return id, nil
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (title, content, slug, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		rs.posts)

	res, err := tx.ExecContext(ctx, query, p.Title, p.Content, slug, now, now)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (rs *SQLRecordStore) upsertTag(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var insert string
	if rs.placeholder == placeholderDollar {
		insert = rs.rebind(fmt.Sprintf("INSERT INTO %s (name) VALUES (?) ON CONFLICT (name) DO NOTHING", rs.tags))
	} else {
		insert = fmt.Sprintf("INSERT IGNORE INTO %s (name) VALUES (?)", rs.tags)
	}

	if _, err := tx.ExecContext(ctx, insert, name); err != nil {
		return 0, err
	}

	query := rs.rebind(fmt.Sprintf("SELECT id FROM %s WHERE name = ?", rs.tags))

	var id int64
	if err := tx.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

func (rs *SQLRecordStore) GetPost(ctx context.Context, slug string) (*Post, error) {
	query := rs.rebind(fmt.Sprintf(
		"SELECT id, title, content, slug, created_at, updated_at FROM %s WHERE slug = ?",
		rs.posts))

	var post Post
	err := rs.db.QueryRowContext(ctx, query, slug).
		Scan(&post.ID, &post.Title, &post.Content, &post.Slug, &post.CreatedAt, &post.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	tags, err := rs.postTagNames(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	return &post, nil
}

func (rs *SQLRecordStore) ListPosts(ctx context.Context) ([]Post, error) {
	query := fmt.Sprintf(
		"SELECT id, title, content, slug, created_at, updated_at FROM %s ORDER BY created_at DESC",
		rs.posts)

	rows, err := rs.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var post Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.Slug, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		tags, err := rs.postTagNames(ctx, posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Tags = tags
	}

	return posts, nil
}

func (rs *SQLRecordStore) postTagNames(ctx context.Context, postID int64) ([]string, error) {
	query := rs.rebind(fmt.Sprintf(
		"SELECT t.name FROM %s t JOIN %s pt ON pt.tag_id = t.id WHERE pt.post_id = ? ORDER BY t.name",
		rs.tags, rs.postTags))

	rows, err := rs.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
