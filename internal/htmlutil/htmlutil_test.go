package htmlutil

import (
	"reflect"
	"strings"
	"testing"
)

const testHTML = `
<html>
<head>
  <title> テストページ </title>
  <style>body { color: red; }</style>
</head>
<body>
<h1>見出し</h1>
<p>これは<b>テスト</b>です。
   次の行。</p>
<script>var x = "無視";</script>
<ul><li>一つ目</li><li>二つ目<br>改行</li></ul>
<p><ruby>漢字<rp>(</rp><rt>かんじ</rt><rp>)</rp></ruby>を読む</p>
<div>   </div>
</body></html>
`

func TestDocumentText(t *testing.T) {
	doc, err := LoadHTMLString(testHTML)
	if err != nil {
		t.Fatal(err)
	}
	got := DocumentText(doc)
	want := []string{
		"見出し",
		"これはテストです。 次の行。",
		"一つ目",
		"二つ目",
		"改行",
		"漢字を読む",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DocumentText = %q, want %q", got, want)
	}
}

func TestGetTitle(t *testing.T) {
	doc, err := LoadHTMLString(testHTML)
	if err != nil {
		t.Fatal(err)
	}
	if got := GetTitle(doc); got != "テストページ" {
		t.Errorf("title = %q, want %q", got, "テストページ")
	}
}

func TestReadTextFragment(t *testing.T) {
	got, err := ReadText(strings.NewReader("<span>それは</span><span>ペン</span>"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"それはペン"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadText = %q, want %q", got, want)
	}
}

func TestGetTextBlocksEmpty(t *testing.T) {
	doc, err := LoadHTMLString("<html><body><script>x()</script></body></html>")
	if err != nil {
		t.Fatal(err)
	}
	if got := DocumentText(doc); len(got) != 0 {
		t.Errorf("DocumentText = %q, want none", got)
	}
}
