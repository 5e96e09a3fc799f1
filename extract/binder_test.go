package extract_test

import (
	"strings"
	"testing"

	"github.com/lmmx/bisque"
	"github.com/lmmx/bisque/cast"
	"github.com/lmmx/bisque/extract"
	bisquehtml "github.com/lmmx/bisque/html"
	"github.com/lmmx/bisque/mock"
	"github.com/lmmx/bisque/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, doc string) *bisque.Node {
	t.Helper()
	root, err := bisquehtml.NewParser().Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return root
}

const articleHTML = `<!DOCTYPE html>
<html><body>
<article>
  <h1> Go Proverbs </h1>
  <span class="views">1234</span>
  <span class="rating">4.5</span>
  <a class="perma" href="/posts/go-proverbs">link</a>
  <ul class="tags">
    <li>go</li>
    <li>style</li>
    <li>talks</li>
  </ul>
</article>
</body></html>`

func articleSchema() *bisque.Record {
	return &bisque.Record{
		Name: "article",
		Fields: []bisque.Field{
			{Name: "title", Selector: "h1", Mode: bisque.ModeOne, Type: bisque.TypeString},
			{Name: "views", Selector: "span.views", Mode: bisque.ModeOne, Type: bisque.TypeInt},
			{Name: "rating", Selector: "span.rating", Mode: bisque.ModeOne, Type: bisque.TypeFloat},
			{Name: "url", Selector: "a.perma", Mode: bisque.ModeOne, Type: bisque.TypeString, Attr: "href"},
			{Name: "tags", Selector: "ul.tags > li", Mode: bisque.ModeAll, Type: bisque.TypeString},
			{Name: "subtitle", Selector: "h2", Mode: bisque.ModeOpt, Type: bisque.TypeString},
		},
	}
}

func TestBinder_Extract(t *testing.T) {
	t.Parallel()

	t.Run("populates a full record", func(t *testing.T) {
		t.Parallel()

		b := extract.NewBinder(cast.NewCoercer())
		root := parseHTML(t, articleHTML)

		res, err := b.Extract(articleSchema(), root)
		require.NoError(t, err)
		require.True(t, res.OK())

		assert.Equal(t, "Go Proverbs", res.Fields["title"])
		assert.Equal(t, int64(1234), res.Fields["views"])
		assert.Equal(t, 4.5, res.Fields["rating"])
		assert.Equal(t, "/posts/go-proverbs", res.Fields["url"])
		assert.Equal(t, []any{"go", "style", "talks"}, res.Fields["tags"])
		assert.Nil(t, res.Fields["subtitle"])
	})

	t.Run("missing required field does not abort sibling fields", func(t *testing.T) {
		t.Parallel()

		b := extract.NewBinder(cast.NewCoercer())
		root := parseHTML(t, `<body><p>no heading here</p></body>`)
		schema := &bisque.Record{
			Name: "page",
			Fields: []bisque.Field{
				{Name: "title", Selector: "h1", Mode: bisque.ModeOne, Type: bisque.TypeString},
				{Name: "body", Selector: "p", Mode: bisque.ModeOne, Type: bisque.TypeString},
			},
		}

		res, err := b.Extract(schema, root)
		require.NoError(t, err)
		require.False(t, res.OK())

		require.Len(t, res.Errs, 1)
		assert.Equal(t, "title", res.Errs[0].Path)
		assert.Equal(t, bisque.FailMissing, res.Errs[0].Kind)
		assert.Equal(t, "no heading here", res.Fields["body"])
	})

	t.Run("accumulates every failure before returning", func(t *testing.T) {
		t.Parallel()

		b := extract.NewBinder(cast.NewCoercer())
		root := parseHTML(t, `<body><span class="views">not-a-number</span></body>`)
		schema := &bisque.Record{
			Name: "page",
			Fields: []bisque.Field{
				{Name: "title", Selector: "h1", Mode: bisque.ModeOne, Type: bisque.TypeString},
				{Name: "views", Selector: "span.views", Mode: bisque.ModeOne, Type: bisque.TypeInt},
			},
		}

		res, err := b.Extract(schema, root)
		require.NoError(t, err)
		require.Len(t, res.Errs, 2)

		assert.Equal(t, "title", res.Errs[0].Path)
		assert.Equal(t, bisque.FailMissing, res.Errs[0].Kind)
		assert.Equal(t, "views", res.Errs[1].Path)
		assert.Equal(t, bisque.FailCoerce, res.Errs[1].Kind)
		assert.Contains(t, res.Errs[1].Message, "not-a-number")
	})

	t.Run("multiple matches under ModeOne resolve to first in document order", func(t *testing.T) {
		t.Parallel()

		b := extract.NewBinder(cast.NewCoercer())
		root := parseHTML(t, `<body><h1>first</h1><h1>second</h1></body>`)
		schema := &bisque.Record{
			Name:   "page",
			Fields: []bisque.Field{{Name: "title", Selector: "h1", Mode: bisque.ModeOne, Type: bisque.TypeString}},
		}

		res, err := b.Extract(schema, root)
		require.NoError(t, err)
		assert.Equal(t, "first", res.Fields["title"])
	})

	t.Run("defaults apply when the selector matches nothing", func(t *testing.T) {
		t.Parallel()

		b := extract.NewBinder(cast.NewCoercer())
		root := parseHTML(t, `<body></body>`)
		schema := &bisque.Record{
			Name: "page",
			Fields: []bisque.Field{
				{Name: "lang", Selector: "meta[name=lang]", Mode: bisque.ModeOne, Type: bisque.TypeString, Default: "en"},
			},
		}

		res, err := b.Extract(schema, root)
		require.NoError(t, err)
		require.True(t, res.OK())
		assert.Equal(t, "en", res.Fields["lang"])
	})

	t.Run("missing attribute on matched node fails required fields only", func(t *testing.T) {
		t.Parallel()

		b := extract.NewBinder(cast.NewCoercer())
		root := parseHTML(t, `<body><a id="x">no href</a></body>`)
		schema := &bisque.Record{
			Name: "page",
			Fields: []bisque.Field{
				{Name: "url", Selector: "a", Mode: bisque.ModeOne, Type: bisque.TypeString, Attr: "href"},
				{Name: "alt", Selector: "a", Mode: bisque.ModeOpt, Type: bisque.TypeString, Attr: "href"},
			},
		}

		res, err := b.Extract(schema, root)
		require.NoError(t, err)
		require.Len(t, res.Errs, 1)
		assert.Equal(t, "url", res.Errs[0].Path)
		assert.Equal(t, bisque.FailMissing, res.Errs[0].Kind)
		assert.Nil(t, res.Fields["alt"])
	})

	t.Run("rejects malformed selectors before touching the document", func(t *testing.T) {
		t.Parallel()

		calls := 0
		coercer := &mock.Coercer{CoerceFn: func(raw string, typ bisque.FieldType) (any, error) {
			calls++
			return raw, nil
		}}
		b := extract.NewBinder(coercer)
		root := parseHTML(t, articleHTML)
		schema := &bisque.Record{
			Name: "bad",
			Fields: []bisque.Field{
				{Name: "ok", Selector: "h1", Mode: bisque.ModeOne, Type: bisque.TypeString},
				{Name: "broken", Selector: "div >", Mode: bisque.ModeOne, Type: bisque.TypeString},
			},
		}

		_, err := b.Extract(schema, root)
		require.Error(t, err)
		assert.Equal(t, bisque.EINVALID, bisque.ErrorCode(err))
		assert.Contains(t, bisque.ErrorMessage(err), "broken")
		assert.Zero(t, calls)
	})

	t.Run("is idempotent on an immutable tree", func(t *testing.T) {
		t.Parallel()

		b := extract.NewBinder(cast.NewCoercer())
		root := parseHTML(t, articleHTML)

		res1, err := b.Extract(articleSchema(), root)
		require.NoError(t, err)
		res2, err := b.Extract(articleSchema(), root)
		require.NoError(t, err)
		assert.Equal(t, res1, res2)
	})
}

const bookshelfHTML = `<body>
<div class="book">
  <h2>The Go Programming Language</h2>
  <span class="price">39.99</span>
</div>
<div class="book">
  <h2>Go in Action</h2>
  <span class="price">expensive</span>
</div>
<div class="book">
  <h2>Learning Go</h2>
</div>
</body>`

func bookshelfSchema() *bisque.Record {
	return &bisque.Record{
		Name: "shelf",
		Fields: []bisque.Field{
			{Name: "books", Selector: "div.book", Mode: bisque.ModeAll, Record: &bisque.Record{
				Name: "book",
				Fields: []bisque.Field{
					{Name: "title", Selector: "h2", Mode: bisque.ModeOne, Type: bisque.TypeString},
					{Name: "price", Selector: "span.price", Mode: bisque.ModeOne, Type: bisque.TypeFloat},
				},
			}},
		},
	}
}

func TestBinder_NestedRecords(t *testing.T) {
	t.Parallel()

	t.Run("recurses per matched element and prefixes failure paths", func(t *testing.T) {
		t.Parallel()

		b := extract.NewBinder(cast.NewCoercer())
		root := parseHTML(t, bookshelfHTML)

		res, err := b.Extract(bookshelfSchema(), root)
		require.NoError(t, err)

		books, ok := res.Fields["books"].([]any)
		require.True(t, ok)
		require.Len(t, books, 3)

		first, ok := books[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "The Go Programming Language", first["title"])
		assert.Equal(t, 39.99, first["price"])

		require.Len(t, res.Errs, 2)
		assert.Equal(t, "books[1].price", res.Errs[0].Path)
		assert.Equal(t, bisque.FailCoerce, res.Errs[0].Kind)
		assert.Equal(t, "books[2].price", res.Errs[1].Path)
		assert.Equal(t, bisque.FailMissing, res.Errs[1].Kind)
	})

	t.Run("nested queries are scoped to the matched subtree", func(t *testing.T) {
		t.Parallel()

		// The h2 outside any .book must not leak into nested records.
		b := extract.NewBinder(cast.NewCoercer())
		root := parseHTML(t, `<body>
<h2>Shelf heading</h2>
<div class="book"><h2>Only title</h2><span class="price">1.50</span></div>
</body>`)

		res, err := b.Extract(bookshelfSchema(), root)
		require.NoError(t, err)
		require.True(t, res.OK())

		books := res.Fields["books"].([]any)
		require.Len(t, books, 1)
		assert.Equal(t, "Only title", books[0].(map[string]any)["title"])
	})

	t.Run("subtree extraction equals extraction of a detached copy", func(t *testing.T) {
		t.Parallel()

		b := extract.NewBinder(cast.NewCoercer())
		root := parseHTML(t, bookshelfHTML)

		sub := bookshelfSchema().Fields[0].Record
		div := parseFirst(t, root, "div.book")

		res1, err := b.Extract(sub, div)
		require.NoError(t, err)
		res2, err := b.Extract(sub, div.Clone())
		require.NoError(t, err)
		assert.Equal(t, res1, res2)
	})
}

// parseFirst returns the first node matching src under root.
func parseFirst(t *testing.T, root *bisque.Node, src string) *bisque.Node {
	t.Helper()
	sel, err := selector.Compile(src)
	require.NoError(t, err)
	n := sel.First(root)
	require.NotNil(t, n, "no node matched %q", src)
	return n
}
