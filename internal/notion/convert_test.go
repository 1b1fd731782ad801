package notion

import (
	"errors"
	"strings"
	"testing"

	"docflow/internal/blocks"
	"docflow/internal/publish"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNotionBlocks(t *testing.T) {
	in := []blocks.Block{
		blocks.Heading{Level: 2, Text: "Usage"},
		blocks.Paragraph{Runs: []blocks.Run{{Text: "This is "}, {Text: "bold", Bold: true}}},
		blocks.BulletItem{Runs: []blocks.Run{{Text: "Overview", Link: "https://www.notion.so/abc"}}},
		blocks.NumberItem{Runs: []blocks.Run{{Text: "first"}}},
		blocks.CodeBlock{Language: "python", Text: "x = 1"},
	}

	out, err := toNotionBlocks(in)
	require.NoError(t, err)
	require.Len(t, out, 5)

	h, ok := out[0].(notionapi.Heading2Block)
	require.True(t, ok)
	assert.Equal(t, notionapi.BlockTypeHeading2, h.Type)
	assert.Equal(t, "Usage", h.Heading2.RichText[0].Text.Content)

	p, ok := out[1].(notionapi.ParagraphBlock)
	require.True(t, ok)
	require.Len(t, p.Paragraph.RichText, 2)
	assert.False(t, p.Paragraph.RichText[0].Annotations.Bold)
	assert.True(t, p.Paragraph.RichText[1].Annotations.Bold)

	li, ok := out[2].(notionapi.BulletedListItemBlock)
	require.True(t, ok)
	require.NotNil(t, li.BulletedListItem.RichText[0].Text.Link)
	assert.Equal(t, "https://www.notion.so/abc", li.BulletedListItem.RichText[0].Text.Link.Url)

	_, ok = out[3].(notionapi.NumberedListItemBlock)
	assert.True(t, ok)

	code, ok := out[4].(notionapi.CodeBlock)
	require.True(t, ok)
	assert.Equal(t, "python", code.Code.Language)
	assert.Equal(t, "x = 1", code.Code.RichText[0].Text.Content)
}

func TestToNotionBlocks_BadHeading(t *testing.T) {
	_, err := toNotionBlocks([]blocks.Block{blocks.Heading{Level: 4, Text: "x"}})
	assert.Error(t, err)
}

func TestRichText_SplitsLongRuns(t *testing.T) {
	long := strings.Repeat("é", maxRichTextLength*2+5)

	rt := richText([]blocks.Run{{Text: long, Bold: true}})
	require.Len(t, rt, 3)

	var joined strings.Builder
	for _, r := range rt {
		assert.LessOrEqual(t, len([]rune(r.Text.Content)), maxRichTextLength)
		assert.True(t, r.Annotations.Bold)
		joined.WriteString(r.Text.Content)
	}
	assert.Equal(t, long, joined.String())
}

func TestRichText_ItemLimit(t *testing.T) {
	t.Run("many bold spans merge into the last item", func(t *testing.T) {
		var runs []blocks.Run
		var want strings.Builder
		for i := 0; i < 60; i++ {
			runs = append(runs, blocks.Run{Text: "see "}, blocks.Run{Text: "term", Bold: true})
			want.WriteString("see term")
		}

		rt := richText(runs)
		require.Len(t, rt, maxRichTextItems)
		assert.True(t, rt[1].Annotations.Bold)
		assert.False(t, rt[maxRichTextItems-1].Annotations.Bold)
		assert.Equal(t, want.String(), joinedContent(rt))
	})

	t.Run("long overflow falls back to plain text", func(t *testing.T) {
		var runs []blocks.Run
		for i := 0; i < 120; i++ {
			runs = append(runs, blocks.Run{Text: strings.Repeat("x", 100), Bold: i%2 == 0})
		}

		rt := richText(runs)
		require.Len(t, rt, 6)
		for _, r := range rt {
			assert.False(t, r.Annotations.Bold)
			assert.LessOrEqual(t, len([]rune(r.Text.Content)), maxRichTextLength)
		}
		assert.Equal(t, strings.Repeat("x", 12000), joinedContent(rt))
	})

	t.Run("oversized run is capped", func(t *testing.T) {
		rt := richText([]blocks.Run{{Text: strings.Repeat("y", maxRichTextLength*150)}})
		require.Len(t, rt, maxRichTextItems)
		for _, r := range rt {
			assert.Len(t, r.Text.Content, maxRichTextLength)
		}
	})

	t.Run("blocks stay within the limit", func(t *testing.T) {
		var runs []blocks.Run
		for i := 0; i < 150; i++ {
			runs = append(runs, blocks.Run{Text: "w", Bold: true}, blocks.Run{Text: " "})
		}
		out, err := toNotionBlocks([]blocks.Block{blocks.Paragraph{Runs: runs}, blocks.BulletItem{Runs: runs}})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Len(t, out[0].(notionapi.ParagraphBlock).Paragraph.RichText, maxRichTextItems)
		assert.Len(t, out[1].(notionapi.BulletedListItemBlock).BulletedListItem.RichText, maxRichTextItems)
	})
}

func joinedContent(rt []notionapi.RichText) string {
	var b strings.Builder
	for _, r := range rt {
		b.WriteString(r.Text.Content)
	}
	return b.String()
}

func TestSplitText(t *testing.T) {
	assert.Equal(t, []string{""}, splitText("", 10))
	assert.Equal(t, []string{"abc"}, splitText("abc", 3))
	assert.Equal(t, []string{"abc", "de"}, splitText("abcde", 3))
}

func TestPageTitle(t *testing.T) {
	page := &notionapi.Page{Properties: notionapi.Properties{
		"title": &notionapi.TitleProperty{Title: []notionapi.RichText{
			{PlainText: "Module: "},
			{PlainText: "core"},
		}},
	}}
	assert.Equal(t, "Module: core", pageTitle(page))
	assert.Empty(t, pageTitle(&notionapi.Page{}))
}

func TestEmojiIcon(t *testing.T) {
	assert.Nil(t, emojiIcon(""))
	icon := emojiIcon("📦")
	require.NotNil(t, icon)
	require.NotNil(t, icon.Emoji)
	assert.Equal(t, "📦", string(*icon.Emoji))
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"rate limited status", &notionapi.Error{Status: 429, Code: "rate_limited", Message: "slow down"}, publish.ErrRateLimited},
		{"unauthorized", &notionapi.Error{Status: 401, Code: "unauthorized"}, publish.ErrUnauthorized},
		{"not found", &notionapi.Error{Status: 404, Code: "object_not_found"}, publish.ErrNotFound},
		{"exhausted client retries", &notionapi.RateLimitedError{Message: "Retry request with 429 response failed after 3 retries"}, publish.ErrRateLimited},
		{"unstructured rate limit", errors.New("upstream: rate limited, try later"), publish.ErrRateLimited},
		{"not found with 429 in id", &notionapi.Error{Status: 404, Code: "object_not_found", Message: "Could not find block with ID: 1a2b4290-0000-4000-8000-000000000000"}, publish.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapError("op", tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.err)

			var re *publish.RemoteError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, "op", re.Op)
		})
	}

	plain := wrapError("op", errors.New("validation failed"))
	assert.False(t, publish.IsRateLimited(plain))
	assert.NotErrorIs(t, plain, publish.ErrNotFound)

	t.Run("structured errors ignore message text", func(t *testing.T) {
		for _, apiErr := range []*notionapi.Error{
			{Status: 404, Code: "object_not_found", Message: "Could not find block with ID: 1a2b4290-0000-4000-8000-000000000000"},
			{Status: 400, Code: "validation_error", Message: "body failed validation: rate limit field 429"},
		} {
			err := wrapError("delete block", apiErr)
			assert.False(t, publish.IsRateLimited(err), apiErr.Message)
			assert.NotErrorIs(t, err, publish.ErrRateLimited)
		}
	})
}
