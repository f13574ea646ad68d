package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const postExt = ".md"

// Logger receives load and reload reports.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
	Debug(string)
}

// Store keeps the parsed posts of one directory in memory.
type Store struct {
	dir    string
	logger Logger

	mu     sync.RWMutex
	posts  []*Post // newest first
	bySlug map[string]*Post
}

// NewStore creates an empty store for dir. Call Load to read the posts.
func NewStore(dir string, logger Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logger,
		bySlug: map[string]*Post{},
	}
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string { return s.dir }

// Load reads every post in the directory and replaces the current set.
// Posts that fail to parse are logged and left out.
func (s *Store) Load() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read posts dir: %w", err)
	}

	posts := make([]*Post, 0, len(entries))
	bySlug := make(map[string]*Post, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != postExt {
			continue
		}
		slug := strings.TrimSuffix(e.Name(), postExt)
		raw, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			s.logger.Warning(fmt.Sprintf("Reading post %s: %v", slug, err))
			continue
		}
		p, err := Parse(slug, raw)
		if err != nil {
			s.logger.Warning(fmt.Sprintf("Skipping post %s: %v", slug, err))
			continue
		}
		posts = append(posts, p)
		bySlug[slug] = p
	}

	sort.SliceStable(posts, func(a, b int) bool {
		if !posts[a].Date.Equal(posts[b].Date) {
			return posts[a].Date.After(posts[b].Date)
		}
		return posts[a].Slug < posts[b].Slug
	})

	s.mu.Lock()
	s.posts = posts
	s.bySlug = bySlug
	s.mu.Unlock()

	s.logger.Info(fmt.Sprintf("Loaded %d posts from %s", len(posts), s.dir))
	return nil
}

// Posts returns all posts, newest first.
func (s *Store) Posts() []*Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Post(nil), s.posts...)
}

// ByCategory returns the posts in category, newest first. Matching ignores case.
func (s *Store) ByCategory(category string) []*Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Post
	for _, p := range s.posts {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories in alphabetical order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]struct{}{}
	var out []string
	for _, p := range s.posts {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

// BySlug returns the post with slug or ErrPostNotFound.
func (s *Store) BySlug(slug string) (*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.bySlug[slug]
	if !ok {
		return nil, ErrPostNotFound
	}
	return p, nil
}
