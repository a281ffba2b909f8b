package ofxparser

import (
	"strings"

	"poupafin/extrato/internal/parsererror"

	"gopkg.in/xmlpath.v2"
)

// XPath expressions for OFX 2.x documents. The STMTTRN path is relative to
// the document root so it matches bank and credit-card statement sections alike.
var (
	xpathStmtTrn = xmlpath.MustCompile("//STMTTRN")
	xpathDate    = xmlpath.MustCompile("DTPOSTED")
	xpathAmount  = xmlpath.MustCompile("TRNAMT")
	xpathName    = xmlpath.MustCompile("NAME")
	xpathMemo    = xmlpath.MustCompile("MEMO")
)

// extractXMLBlocks pulls the raw <STMTTRN> field values out of an OFX 2.x
// XML document. A document that does not parse as XML is an input-level
// error; individual blocks still go through the same silent-drop lift as
// the SGML path.
func extractXMLBlocks(text string) ([]stmtBlock, error) {
	root, err := xmlpath.Parse(strings.NewReader(text))
	if err != nil {
		return nil, &parsererror.ParseError{Parser: "ofx", Field: "document", Value: "xml", Err: err}
	}

	var blocks []stmtBlock
	iter := xpathStmtTrn.Iter(root)
	for iter.Next() {
		node := iter.Node()
		blocks = append(blocks, stmtBlock{
			date:   xpathString(xpathDate, node),
			amount: xpathString(xpathAmount, node),
			name:   xpathString(xpathName, node),
			memo:   xpathString(xpathMemo, node),
		})
	}

	log.WithField("blocks", len(blocks)).Debug("Extracted OFX 2.x transaction blocks")
	return blocks, nil
}

func xpathString(path *xmlpath.Path, node *xmlpath.Node) string {
	if value, ok := path.String(node); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
