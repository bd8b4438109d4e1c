package surround

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/vibedit/dom"
)

type none = struct{}

func tagFormat(tags ...string) *SurroundFormat[none] {
	doc := dom.NewDocument()
	return &SurroundFormat[none]{
		Name: tags[0],
		Matcher: func(el *dom.Element) MatchResult[none] {
			for _, tag := range tags {
				if el.LocalName() == tag {
					return Remove[none]()
				}
			}
			return MatchResult[none]{}
		},
		SurroundElement: doc.CreateElement(tags[0]),
	}
}

func fixture(t *testing.T, html string) *dom.Element {
	t.Helper()
	_, body, err := dom.ParseFragment(html)
	require.NoError(t, err)
	return body
}

func newRange(base *dom.Element) *dom.Range {
	return dom.NewRange(base.AsNode().OwnerDocument())
}

func selectNode(t *testing.T, base *dom.Element, node *dom.Node) *dom.Range {
	t.Helper()
	rng := newRange(base)
	require.NoError(t, rng.SelectNode(node))
	return rng
}

func selectContents(t *testing.T, base *dom.Element, node *dom.Node) *dom.Range {
	t.Helper()
	rng := newRange(base)
	require.NoError(t, rng.SelectNodeContents(node))
	return rng
}

func textRange(t *testing.T, base *dom.Element, start, end int) *dom.Range {
	t.Helper()
	rng, err := dom.RangeFromTextOffsets(base, start, end)
	require.NoError(t, err)
	return rng
}

func TestSurroundText(t *testing.T) {
	bold := tagFormat("b")

	t.Run("all text", func(t *testing.T) {
		body := fixture(t, "111222")
		got, err := Surround(selectNode(t, body, body.AsNode().FirstChild()), body, bold)
		require.NoError(t, err)
		assert.Equal(t, "<b>111222</b>", body.InnerHTML())
		assert.Equal(t, "111222", got.ToString())
	})

	t.Run("first half", func(t *testing.T) {
		body := fixture(t, "111222")
		got, err := Surround(textRange(t, body, 0, 3), body, bold)
		require.NoError(t, err)
		assert.Equal(t, "<b>111</b>222", body.InnerHTML())
		assert.Equal(t, "111", got.ToString())
	})

	t.Run("second half", func(t *testing.T) {
		body := fixture(t, "111222")
		got, err := Surround(textRange(t, body, 3, 6), body, bold)
		require.NoError(t, err)
		assert.Equal(t, "111<b>222</b>", body.InnerHTML())
		assert.Equal(t, "222", got.ToString())
	})

	t.Run("middle", func(t *testing.T) {
		body := fixture(t, "111222")
		got, err := Surround(textRange(t, body, 2, 4), body, bold)
		require.NoError(t, err)
		assert.Equal(t, "11<b>12</b>22", body.InnerHTML())
		assert.Equal(t, "12", got.ToString())
	})
}

func TestSurroundRemovesEmptyAnchors(t *testing.T) {
	body := fixture(t, "<i>ab</i>cd<u>ef</u>")
	i := body.AsNode().FirstChild()
	u := body.AsNode().LastChild()

	rng := newRange(body)
	require.NoError(t, rng.SetStart(i, 1))
	require.NoError(t, rng.SetEnd(u, 0))

	got, err := Surround(rng, body, tagFormat("b"))
	require.NoError(t, err)
	assert.Equal(t, "<i>ab</i><b>cd</b><u>ef</u>", body.InnerHTML())
	assert.Equal(t, 1, i.ChildCount())
	assert.Equal(t, 1, u.ChildCount())
	assert.Equal(t, "cd", got.ToString())
}

func TestSurroundNextToNested(t *testing.T) {
	tests := []struct {
		name   string
		html   string
		format *SurroundFormat[none]
		last   bool
		expect string
	}{
		{"before enlarges bottom tag", "before<u><b>after</b></u>", tagFormat("u"), false, "<u>before<b>after</b></u>"},
		{"before moves nested down", "before<u><b>after</b></u>", tagFormat("b"), false, "<b>before<u>after</u></b>"},
		{"after enlarges bottom tag", "<u><b>before</b></u>after", tagFormat("u"), true, "<u><b>before</b>after</u>"},
		{"after moves nested down", "<u><b>before</b></u>after", tagFormat("b"), true, "<b><u>before</u>after</b>"},
		{"extends to both", "aaa<i><b>bbb</b></i><i><b>ccc</b></i>", tagFormat("b"), false, "<b>aaa<i>bbb</i><i>ccc</i></b>"},
		{"nested matches", "111<b>222<b>333<b>444</b></b></b>555", tagFormat("b"), true, "111<b>222333444555</b>"},
		{"nested non-matching", "111<b>222<i>333<i>444</i></i></b>555", tagFormat("b"), true, "111<b>222<i>333<i>444</i></i>555</b>"},
		{"text element text", "111<b>222<b>333</b>444</b>555", tagFormat("b"), true, "111<b>222333444555</b>"},
		{"joins with existing over empty element", "before<br><b>after</b>", tagFormat("b"), false, "<b>before<br>after</b>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := fixture(t, tt.html)
			node := body.AsNode().FirstChild()
			if tt.last {
				node = body.AsNode().LastChild()
			}
			_, err := Surround(selectNode(t, body, node), body, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, body.InnerHTML())
		})
	}
}

func TestSurroundAcrossBlock(t *testing.T) {
	body := fixture(t, "Before<br><ul><li>First</li><li>Second</li></ul>")
	rng := newRange(body)
	require.NoError(t, rng.SetStartBefore(body.AsNode().FirstChild()))
	require.NoError(t, rng.SetEndAfter(body.AsNode().LastChild()))

	got, err := Surround(rng, body, tagFormat("b"))
	require.NoError(t, err)
	assert.Equal(t, "<b>Before</b><br><ul><li><b>First</b></li><li><b>Second</b></li></ul>", body.InnerHTML())
	assert.Equal(t, "BeforeFirstSecond", got.ToString())
}

func TestSurroundNormalizesNested(t *testing.T) {
	t.Run("already nested", func(t *testing.T) {
		body := fixture(t, "<b>1<b>2</b></b><br>")
		_, err := Surround(selectNode(t, body, body.AsNode().FirstChild()), body, tagFormat("b"))
		require.NoError(t, err)
		assert.Equal(t, "<b>12</b><br>", body.InnerHTML())
	})

	t.Run("complicated structure", func(t *testing.T) {
		body := fixture(t, "<i>1</i><b><i>2</i>3<i>4</i></b><i>5</i>")
		rng := newRange(body)
		require.NoError(t, rng.SetStartBefore(body.FirstElementChild().AsNode().FirstChild()))
		require.NoError(t, rng.SetEndAfter(body.AsNode().LastChild().FirstChild()))

		got, err := Surround(rng, body, tagFormat("b"))
		require.NoError(t, err)
		assert.Equal(t, "<b><i>1</i><i>2</i>3<i>4</i><i>5</i></b>", body.InnerHTML())
		assert.Equal(t, "12345", got.ToString())
	})
}

func TestSurroundSkipsEmptyElements(t *testing.T) {
	t.Run("joins two new spans", func(t *testing.T) {
		body := fixture(t, "before<br>after")
		rng := newRange(body)
		require.NoError(t, rng.SetStartBefore(body.AsNode().FirstChild()))
		require.NoError(t, rng.SetEndAfter(body.AsNode().ChildAt(2)))

		got, err := Surround(rng, body, tagFormat("b"))
		require.NoError(t, err)
		assert.Equal(t, "<b>before<br>after</b>", body.InnerHTML())
		assert.Equal(t, "beforeafter", got.ToString())
	})

	t.Run("node contents", func(t *testing.T) {
		body := fixture(t, "before<br><b>after</b>")
		got, err := Surround(selectContents(t, body, body.AsNode().FirstChild()), body, tagFormat("b"))
		require.NoError(t, err)
		assert.Equal(t, "<b>before<br>after</b>", body.InnerHTML())
		assert.Equal(t, "before", got.ToString())
	})
}

func TestSurroundMergeMaximality(t *testing.T) {
	body := fixture(t, "<b>A</b>B<b>C</b>")
	_, err := Surround(selectNode(t, body, body.AsNode().ChildAt(1)), body, tagFormat("b"))
	require.NoError(t, err)
	assert.Equal(t, "<b>ABC</b>", body.InnerHTML())
}

func TestSurroundAlias(t *testing.T) {
	body := fixture(t, "<strong>ab</strong>cd")
	_, err := Surround(textRange(t, body, 2, 4), body, tagFormat("b", "strong"))
	require.NoError(t, err)
	assert.Equal(t, "<b>abcd</b>", body.InnerHTML())
}

func TestSurroundKeepsBlocks(t *testing.T) {
	body := fixture(t, "<p>ab</p><p>cd</p>")
	rng := newRange(body)
	require.NoError(t, rng.SetStart(body.AsNode(), 0))
	require.NoError(t, rng.SetEnd(body.AsNode(), 2))

	_, err := Surround(rng, body, tagFormat("b"))
	require.NoError(t, err)
	assert.Equal(t, "<p><b>ab</b></p><p><b>cd</b></p>", body.InnerHTML())
}

func TestSurroundWithinBase(t *testing.T) {
	body := fixture(t, `<div id="field"><i>ab</i></div>`)
	base := body.FirstElementChild()

	_, err := Surround(selectContents(t, base, base.AsNode().FirstChild()), base, tagFormat("b"))
	require.NoError(t, err)
	assert.Equal(t, `<div id="field"><b><i>ab</i></b></div>`, body.InnerHTML())
}

func TestUnsurround(t *testing.T) {
	bold := tagFormat("b")

	t.Run("second half", func(t *testing.T) {
		body := fixture(t, "<b>111222</b>")
		got, err := Unsurround(textRange(t, body, 3, 6), body, bold)
		require.NoError(t, err)
		assert.Equal(t, "<b>111</b>222", body.InnerHTML())
		assert.Equal(t, "222", got.ToString())
	})

	t.Run("whole element", func(t *testing.T) {
		body := fixture(t, "x<b>abc</b>y")
		_, err := Unsurround(selectNode(t, body, body.AsNode().ChildAt(1)), body, bold)
		require.NoError(t, err)
		assert.Equal(t, "xabcy", body.InnerHTML())
	})

	t.Run("keeps outside parts", func(t *testing.T) {
		body := fixture(t, "<b>abcdef</b>")
		got, err := Unsurround(textRange(t, body, 2, 4), body, bold)
		require.NoError(t, err)
		assert.Equal(t, "<b>ab</b>cd<b>ef</b>", body.InnerHTML())
		assert.Equal(t, "cd", got.ToString())
	})

	t.Run("nested matches", func(t *testing.T) {
		body := fixture(t, "<b>a<i>b<b>c</b></i></b>")
		_, err := Unsurround(selectContents(t, body, body.AsNode()), body, bold)
		require.NoError(t, err)
		assert.Equal(t, "a<i>bc</i>", body.InnerHTML())
	})

	t.Run("unrelated selection", func(t *testing.T) {
		body := fixture(t, "ab<b>cd</b>")
		_, err := Unsurround(textRange(t, body, 0, 2), body, bold)
		require.NoError(t, err)
		assert.Equal(t, "ab<b>cd</b>", body.InnerHTML())
	})
}

func TestReformat(t *testing.T) {
	bold := tagFormat("b")

	t.Run("fuses adjacent", func(t *testing.T) {
		body := fixture(t, "<b>a</b><b>b</b>")
		got, err := Reformat(selectContents(t, body, body.AsNode()), body, bold)
		require.NoError(t, err)
		assert.Equal(t, "<b>ab</b>", body.InnerHTML())
		assert.Equal(t, "ab", got.ToString())
	})

	t.Run("leaves unformatted text alone", func(t *testing.T) {
		body := fixture(t, "x<b>a</b>")
		_, err := Reformat(selectContents(t, body, body.AsNode()), body, bold)
		require.NoError(t, err)
		assert.Equal(t, "x<b>a</b>", body.InnerHTML())
	})

	t.Run("idempotent", func(t *testing.T) {
		body := fixture(t, "<b>a<b>b</b></b>c<strong>d</strong>")
		format := tagFormat("b", "strong")
		rng := selectContents(t, body, body.AsNode())

		rng, err := Reformat(rng, body, format)
		require.NoError(t, err)
		once := body.InnerHTML()

		_, err = Reformat(rng, body, format)
		require.NoError(t, err)
		assert.Equal(t, once, body.InnerHTML())
		assert.Equal(t, "<b>ab</b>c<b>d</b>", once)
	})
}

func TestRoundTripKeepsText(t *testing.T) {
	body := fixture(t, "ab<i>cd</i>ef")
	bold := tagFormat("b")

	rng, err := Surround(textRange(t, body, 1, 5), body, bold)
	require.NoError(t, err)
	assert.Equal(t, "a<b>b<i>cd</i>e</b>f", body.InnerHTML())

	_, err = Unsurround(rng, body, bold)
	require.NoError(t, err)
	assert.Equal(t, "ab<i>cd</i>ef", body.InnerHTML())
}

func TestOperationsConserveText(t *testing.T) {
	body := fixture(t, "one <i>two</i> three <u>four <b>five</b></u> six")
	text := body.TextContent()
	bold := tagFormat("b")
	italic := tagFormat("i")

	steps := []struct {
		op         func(*dom.Range, *dom.Element, *SurroundFormat[none]) (*dom.Range, error)
		format     *SurroundFormat[none]
		start, end int
	}{
		{Surround[none], bold, 2, 9},
		{Surround[none], italic, 5, 20},
		{Unsurround[none], bold, 4, 6},
		{Reformat[none], italic, 0, len(text)},
		{Unsurround[none], italic, 8, 24},
		{Surround[none], bold, 0, len(text)},
	}

	for _, step := range steps {
		_, err := step.op(textRange(t, body, step.start, step.end), body, step.format)
		require.NoError(t, err)
		assert.Equal(t, text, body.TextContent())
	}
}

func TestClearMatch(t *testing.T) {
	boldStyle := &SurroundFormat[none]{
		Name: "bold",
		Matcher: func(el *dom.Element) MatchResult[none] {
			if el.LocalName() == "b" {
				return Remove[none]()
			}
			if el.Style().GetPropertyValue("font-weight") == "bold" {
				return Clear[none](func() bool {
					el.Style().RemoveProperty("font-weight")
					return el.LocalName() == "span" && el.AttributeCount() == 0
				})
			}
			return MatchResult[none]{}
		},
		SurroundElement: dom.NewDocument().CreateElement("b"),
	}

	t.Run("unsurround keeps other styles", func(t *testing.T) {
		body := fixture(t, `<span style="font-weight: bold; color: red">ab</span>`)
		span := body.AsNode().FirstChild()
		_, err := Unsurround(selectContents(t, body, span), body, boldStyle)
		require.NoError(t, err)
		assert.Equal(t, `<span style="color: red;">ab</span>`, body.InnerHTML())
	})

	t.Run("surround lifts the format out", func(t *testing.T) {
		body := fixture(t, `<span style="font-weight: bold; color: red">ab</span>`)
		span := body.AsNode().FirstChild()
		_, err := Surround(selectContents(t, body, span), body, boldStyle)
		require.NoError(t, err)
		assert.Equal(t, `<b><span style="color: red;">ab</span></b>`, body.InnerHTML())
	})

	t.Run("redundant span is unwrapped", func(t *testing.T) {
		body := fixture(t, `<span style="font-weight: bold">ab</span>cd`)
		_, err := Surround(textRange(t, body, 0, 4), body, boldStyle)
		require.NoError(t, err)
		assert.Equal(t, `<b>abcd</b>`, body.InnerHTML())
	})
}

func TestFormatterReusesExtension(t *testing.T) {
	marker := &SurroundFormat[none]{
		Name: "mark",
		Matcher: func(el *dom.Element) MatchResult[none] {
			return MatchResult[none]{}
		},
		Formatter: func(node *FormattingNode[none]) (bool, error) {
			for _, ext := range node.Extensions() {
				if ext.LocalName() == "span" {
					ext.SetAttribute("data-mark", "1")
					return false, nil
				}
			}
			el := dom.NewDocument().CreateElement("mark")
			return true, node.Surround(el)
		},
	}

	body := fixture(t, "<span>abc</span>de")
	_, err := Surround(selectContents(t, body, body.AsNode().FirstChild()), body, marker)
	require.NoError(t, err)
	assert.Equal(t, `<span data-mark="1">abc</span>de`, body.InnerHTML())

	_, err = Surround(textRange(t, body, 3, 5), body, marker)
	require.NoError(t, err)
	assert.Equal(t, `<span data-mark="1">abc</span><mark>de</mark>`, body.InnerHTML())
}

func TestAscenderVeto(t *testing.T) {
	bold := tagFormat("b")
	bold.Ascender = func(node *FormattingNode[none], parent *ContainerNode[none]) bool {
		return parent.Element().LocalName() != "i"
	}

	body := fixture(t, "<i>ab</i>")
	_, err := Surround(selectContents(t, body, body.AsNode().FirstChild()), body, bold)
	require.NoError(t, err)
	assert.Equal(t, "<i><b>ab</b></i>", body.InnerHTML())
}

func TestCache(t *testing.T) {
	color := &SurroundFormat[string]{
		Name: "color",
		Matcher: func(el *dom.Element) MatchResult[string] {
			if el.LocalName() == "span" {
				return RemoveWithCache(el.Style().GetPropertyValue("color"))
			}
			return MatchResult[string]{}
		},
		Merger: func(before, after *FormattingNode[string]) bool {
			return before.Cache("blue") == after.Cache("blue")
		},
		Formatter: func(node *FormattingNode[string]) (bool, error) {
			span := dom.NewDocument().CreateElement("span")
			span.Style().SetProperty("color", node.Cache("blue"))
			return true, node.Surround(span)
		},
	}

	body := fixture(t, `<span style="color: red">ab</span>cd<span style="color: blue">ef</span>`)
	_, err := Surround(textRange(t, body, 2, 4), body, color)
	require.NoError(t, err)
	assert.Equal(t, `<span style="color: red;">ab</span><span style="color: blue;">cdef</span>`, body.InnerHTML())
}

func TestCollapsedRangeIsUntouched(t *testing.T) {
	body := fixture(t, "abcd")
	rng := textRange(t, body, 2, 2)

	got, err := Surround(rng, body, tagFormat("b"))
	require.NoError(t, err)
	assert.Equal(t, "abcd", body.InnerHTML())
	assert.NotSame(t, rng, got)
	assert.True(t, got.Collapsed())
	assert.Equal(t, 2, got.StartOffset())
}

func TestErrors(t *testing.T) {
	t.Run("nil format", func(t *testing.T) {
		body := fixture(t, "ab")
		_, err := Surround[none](textRange(t, body, 0, 1), body, nil)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("no matcher", func(t *testing.T) {
		body := fixture(t, "ab")
		_, err := Surround(textRange(t, body, 0, 1), body, &SurroundFormat[none]{Name: "empty"})
		assert.ErrorIs(t, err, ErrNoFormat)
	})

	t.Run("range outside base", func(t *testing.T) {
		body := fixture(t, "<p>ab</p><p>cd</p>")
		base := body.FirstElementChild()
		outside := body.AsNode().LastChild().FirstChild()

		_, err := Surround(selectContents(t, body, outside), base, tagFormat("b"))
		assert.ErrorIs(t, err, ErrInvalidRange)
		assert.Equal(t, "<p>ab</p><p>cd</p>", body.InnerHTML())
	})

	t.Run("detached base", func(t *testing.T) {
		doc := dom.NewDocument()
		base := doc.CreateElement("div")
		base.AsNode().AppendChild(doc.CreateTextNode("ab"))

		rng := doc.CreateRange()
		require.NoError(t, rng.SelectNodeContents(base.AsNode().FirstChild()))
		_, err := Surround(rng, base, tagFormat("b"))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("offset inside a character", func(t *testing.T) {
		body := fixture(t, "a€b")
		text := body.AsNode().FirstChild()

		rng := newRange(body)
		require.NoError(t, rng.SetStart(text, 2))
		require.NoError(t, rng.SetEnd(text, 5))

		_, err := Surround(rng, body, tagFormat("b"))
		assert.ErrorIs(t, err, ErrInvalidRange)
		assert.Equal(t, "a€b", body.InnerHTML())
	})

	t.Run("panicking matcher", func(t *testing.T) {
		body := fixture(t, "<i>ab</i>")
		boom := errors.New("boom")
		format := &SurroundFormat[none]{
			Name:    "boom",
			Matcher: func(el *dom.Element) MatchResult[none] { panic(boom) },
		}
		_, err := Surround(selectContents(t, body, body.AsNode().FirstChild()), body, format)
		assert.ErrorIs(t, err, ErrCallback)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("formatter error", func(t *testing.T) {
		body := fixture(t, "ab")
		boom := errors.New("boom")
		format := &SurroundFormat[none]{
			Name:      "boom",
			Matcher:   func(el *dom.Element) MatchResult[none] { return MatchResult[none]{} },
			Formatter: func(*FormattingNode[none]) (bool, error) { return false, boom },
		}
		_, err := Surround(textRange(t, body, 0, 1), body, format)
		assert.ErrorIs(t, err, ErrCallback)
		assert.ErrorIs(t, err, boom)
	})
}

func TestFindClosestAndFarthest(t *testing.T) {
	body := fixture(t, "<b><i><b>x</b></i></b>")
	outer := body.FirstElementChild()
	inner := outer.FirstElementChild().FirstElementChild()
	x := inner.AsNode().FirstChild()
	isBold := BoolMatcher(tagFormat("b"))

	assert.Same(t, inner, FindClosest(x, body, isBold))
	assert.Same(t, outer, FindFarthest(x, body, isBold))
	assert.Nil(t, FindClosest(body.AsNode(), body, isBold))
}
