package notion

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"docflow/internal/blocks"

	"github.com/jomei/notionapi"
)

const (
	// maxRichTextLength is the per rich-text object content limit of the API.
	maxRichTextLength = 2000
	// maxRichTextItems is the API limit on rich-text objects per block.
	maxRichTextItems = 100
)

// toNotionBlocks converts translated blocks into API block payloads.
func toNotionBlocks(in []blocks.Block) ([]notionapi.Block, error) {
	out := make([]notionapi.Block, 0, len(in))
	for _, b := range in {
		nb, err := toNotionBlock(b)
		if err != nil {
			return nil, err
		}
		out = append(out, nb)
	}
	return out, nil
}

func toNotionBlock(b blocks.Block) (notionapi.Block, error) {
	switch v := b.(type) {
	case blocks.Heading:
		rt := richText([]blocks.Run{{Text: v.Text}})
		switch v.Level {
		case 1:
			return notionapi.Heading1Block{
				BasicBlock: basic(notionapi.BlockTypeHeading1),
				Heading1:   notionapi.Heading{RichText: rt},
			}, nil
		case 2:
			return notionapi.Heading2Block{
				BasicBlock: basic(notionapi.BlockTypeHeading2),
				Heading2:   notionapi.Heading{RichText: rt},
			}, nil
		case 3:
			return notionapi.Heading3Block{
				BasicBlock: basic(notionapi.BlockTypeHeading3),
				Heading3:   notionapi.Heading{RichText: rt},
			}, nil
		default:
			return nil, fmt.Errorf("unsupported heading level %d", v.Level)
		}
	case blocks.BulletItem:
		return notionapi.BulletedListItemBlock{
			BasicBlock:       basic(notionapi.BlockTypeBulletedListItem),
			BulletedListItem: notionapi.ListItem{RichText: richText(v.Runs)},
		}, nil
	case blocks.NumberItem:
		return notionapi.NumberedListItemBlock{
			BasicBlock:       basic(notionapi.BlockTypeNumberedListItem),
			NumberedListItem: notionapi.ListItem{RichText: richText(v.Runs)},
		}, nil
	case blocks.CodeBlock:
		return notionapi.CodeBlock{
			BasicBlock: basic(notionapi.BlockTypeCode),
			Code: notionapi.Code{
				RichText: richText([]blocks.Run{{Text: v.Text}}),
				Language: v.Language,
			},
		}, nil
	case blocks.Paragraph:
		return notionapi.ParagraphBlock{
			BasicBlock: basic(notionapi.BlockTypeParagraph),
			Paragraph:  notionapi.Paragraph{RichText: richText(v.Runs)},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported block %T", b)
	}
}

func basic(t notionapi.BlockType) notionapi.BasicBlock {
	return notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: t}
}

// richText converts runs, splitting any run longer than the API limit into
// consecutive items with the same styling. When a block ends up with more
// items than the API accepts, the overflow is merged into one plain last
// item, or the whole block falls back to plain text if that item would be
// too long.
func richText(runs []blocks.Run) []notionapi.RichText {
	out := make([]notionapi.RichText, 0, len(runs))
	for _, r := range runs {
		for _, part := range splitText(r.Text, maxRichTextLength) {
			out = append(out, textItem(part, r))
		}
	}
	if len(out) <= maxRichTextItems {
		return out
	}

	var tail strings.Builder
	for _, rt := range out[maxRichTextItems-1:] {
		tail.WriteString(rt.Text.Content)
	}
	if utf8.RuneCountInString(tail.String()) <= maxRichTextLength {
		return append(out[:maxRichTextItems-1], textItem(tail.String(), blocks.Run{}))
	}

	var all strings.Builder
	for _, r := range runs {
		all.WriteString(r.Text)
	}
	parts := splitText(all.String(), maxRichTextLength)
	if len(parts) > maxRichTextItems {
		parts = parts[:maxRichTextItems]
	}
	plain := make([]notionapi.RichText, 0, len(parts))
	for _, part := range parts {
		plain = append(plain, textItem(part, blocks.Run{}))
	}
	return plain
}

func textItem(content string, style blocks.Run) notionapi.RichText {
	text := &notionapi.Text{Content: content}
	if style.Link != "" {
		text.Link = &notionapi.Link{Url: style.Link}
	}
	return notionapi.RichText{
		Type:        notionapi.ObjectTypeText,
		Text:        text,
		Annotations: &notionapi.Annotations{Bold: style.Bold, Color: notionapi.ColorDefault},
	}
}

// splitText cuts s into pieces of at most limit characters. It always
// returns at least one piece.
func splitText(s string, limit int) []string {
	chars := []rune(s)
	if len(chars) <= limit {
		return []string{s}
	}
	parts := make([]string, 0, len(chars)/limit+1)
	for start := 0; start < len(chars); start += limit {
		end := min(start+limit, len(chars))
		parts = append(parts, string(chars[start:end]))
	}
	return parts
}

func titleProperty(title string) notionapi.Properties {
	return notionapi.Properties{
		"title": notionapi.TitleProperty{
			Title: []notionapi.RichText{{
				Type: notionapi.ObjectTypeText,
				Text: &notionapi.Text{Content: title},
			}},
		},
	}
}

func emojiIcon(emoji string) *notionapi.Icon {
	if emoji == "" {
		return nil
	}
	e := notionapi.Emoji(emoji)
	return &notionapi.Icon{Type: "emoji", Emoji: &e}
}

// pageTitle reads the title property of a retrieved page.
func pageTitle(page *notionapi.Page) string {
	for _, prop := range page.Properties {
		var rt []notionapi.RichText
		switch v := prop.(type) {
		case *notionapi.TitleProperty:
			rt = v.Title
		case notionapi.TitleProperty:
			rt = v.Title
		default:
			continue
		}
		var title string
		for _, t := range rt {
			if t.PlainText != "" {
				title += t.PlainText
			} else if t.Text != nil {
				title += t.Text.Content
			}
		}
		return title
	}
	return ""
}
