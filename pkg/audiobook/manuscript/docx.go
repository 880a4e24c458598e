package manuscript

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	docxDocumentPart = "word/document.xml"
	docxStylesPart   = "word/styles.xml"
)

// ----------------------------------------------------------------------
// 公開ロジック
// ----------------------------------------------------------------------

// ReadDocx は DOCX ファイルの内容から本文の段落を文書順に抽出します。
// 表・テキストボックス・コンテンツコントロール (目次など) 内の段落は含みません。空の段落は読み飛ばします。
// path はエラーメッセージにのみ使用されます。
func ReadDocx(data []byte, path string) ([]SourceItem, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ErrInvalidDocument{Path: path, Details: fmt.Sprintf("ZIPアーカイブとして開けません: %v", err)}
	}

	documentXML, err := readZipEntry(zr, docxDocumentPart)
	if err != nil {
		return nil, &ErrInvalidDocument{Path: path, Details: err.Error()}
	}

	styles := styleCatalog{names: map[string]string{}}
	if stylesXML, err := readZipEntry(zr, docxStylesPart); err == nil {
		styles, err = parseStyles(stylesXML)
		if err != nil {
			return nil, &ErrInvalidDocument{Path: path, Details: fmt.Sprintf("%s の解析に失敗しました: %v", docxStylesPart, err)}
		}
	}

	items, err := parseDocument(documentXML, styles)
	if err != nil {
		return nil, &ErrInvalidDocument{Path: path, Details: fmt.Sprintf("%s の解析に失敗しました: %v", docxDocumentPart, err)}
	}
	return items, nil
}

// ----------------------------------------------------------------------
// スタイル定義
// ----------------------------------------------------------------------

// styleCatalog は styleId からスタイル名への対応表です。
type styleCatalog struct {
	names            map[string]string
	defaultParagraph string
}

// name は段落の styleId に対応するスタイル名を返します。
// styleId が空の場合は既定の段落スタイル名を返します。
func (c styleCatalog) name(styleID string) string {
	if styleID == "" {
		return c.defaultParagraph
	}
	if n, ok := c.names[styleID]; ok {
		return n
	}
	return styleID
}

type stylesDocument struct {
	Styles []struct {
		Type    string `xml:"type,attr"`
		StyleID string `xml:"styleId,attr"`
		Default string `xml:"default,attr"`
		Name    struct {
			Val string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

func parseStyles(data []byte) (styleCatalog, error) {
	var doc stylesDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return styleCatalog{}, err
	}

	catalog := styleCatalog{names: make(map[string]string, len(doc.Styles))}
	for _, s := range doc.Styles {
		if s.Type != "" && s.Type != "paragraph" {
			continue
		}
		name := uiStyleName(s.Name.Val)
		if name == "" {
			name = s.StyleID
		}
		catalog.names[s.StyleID] = name
		if s.Default == "1" || s.Default == "true" {
			catalog.defaultParagraph = name
		}
	}
	return catalog, nil
}

// uiStyleName は styles.xml に小文字で格納される組み込みスタイル名を Word の表示名に揃えます。
func uiStyleName(name string) string {
	switch lower := strings.ToLower(name); {
	case strings.HasPrefix(lower, "heading "):
		return "Heading " + strings.TrimPrefix(lower, "heading ")
	case lower == "normal", lower == "title", lower == "subtitle":
		return strings.ToUpper(lower[:1]) + lower[1:]
	default:
		return name
	}
}

// ----------------------------------------------------------------------
// 本文の解析
// ----------------------------------------------------------------------

// parseDocument は word/document.xml をストリーム解析し、段落を抽出します。
func parseDocument(data []byte, styles styleCatalog) ([]SourceItem, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		items       []SourceItem
		text        strings.Builder
		styleID     string
		inPara      bool
		inParaProps bool
		inText      bool
		nested      int // 表・テキストボックス・コンテンツコントロールの入れ子の深さ
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl", "txbxContent", "sdt":
				nested++
			case "p":
				if nested == 0 {
					inPara = true
					styleID = ""
					text.Reset()
				}
			case "pPr":
				inParaProps = inPara && nested == 0
			case "pStyle":
				if inParaProps {
					styleID = attrValue(t, "val")
				}
			case "t":
				inText = inPara && nested == 0
			case "tab":
				if inPara && !inParaProps && nested == 0 {
					text.WriteByte('\t')
				}
			case "br", "cr":
				if inPara && nested == 0 {
					text.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl", "txbxContent", "sdt":
				nested--
			case "pPr":
				inParaProps = false
			case "t":
				inText = false
			case "p":
				if inPara && nested == 0 {
					inPara = false
					if paragraph := NormalizeParagraph(text.String()); paragraph != "" {
						items = append(items, SourceItem{StyleHint: styles.name(styleID), Text: paragraph})
					}
				}
			}
		case xml.CharData:
			if inText {
				text.Write(t)
			}
		}
	}

	return items, nil
}

func attrValue(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%s を開けません: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s が見つかりません", name)
}
