// Package ofxparser parses OFX bank statements into RawTransactions.
// It accepts both the SGML flavor (OFX 1.x, the common bank export) and the
// XML flavor (OFX 2.x). Malformed transaction blocks are dropped silently
// and counted; they never abort the parse.
package ofxparser

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"poupafin/extrato/internal/dateutils"
	"poupafin/extrato/internal/models"
	"poupafin/extrato/internal/moneyutils"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Result holds the parsed transactions plus the count of blocks that were
// dropped for being malformed. The drop count is diagnostic only; dropping
// is the contract, not an error.
type Result struct {
	Transactions []models.RawTransaction
	Dropped      int
}

// stmtBlock carries the raw field values of one <STMTTRN> block before lifting.
type stmtBlock struct {
	date   string
	amount string
	name   string
	memo   string
}

var (
	blockSplit = regexp.MustCompile(`(?i)<STMTTRN>`)
	tagValue   = map[string]*regexp.Regexp{}
)

func init() {
	for _, tag := range []string{"DTPOSTED", "TRNAMT", "NAME", "MEMO"} {
		// SGML OFX has no closing tags; a value runs to the next '<' or line end.
		tagValue[tag] = regexp.MustCompile(`(?i)<` + tag + `>([^<\r\n]*)`)
	}
}

// Parse reads a full OFX document and returns the transactions of its
// <STMTTRN> blocks. An error is returned only when the input cannot be read
// or, for XML payloads, when the document itself does not parse; individual
// bad blocks are dropped and counted in Result.Dropped.
func Parse(r io.Reader) (Result, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("error reading OFX input: %w", err)
	}

	text := string(content)
	var blocks []stmtBlock
	if isXML(text) {
		blocks, err = extractXMLBlocks(text)
		if err != nil {
			return Result{}, err
		}
	} else {
		blocks = extractSGMLBlocks(text)
	}

	result := liftBlocks(blocks)
	log.WithFields(logrus.Fields{
		"count":   len(result.Transactions),
		"dropped": result.Dropped,
	}).Info("Parsed OFX statement")

	return result, nil
}

func isXML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<?xml")
}

// extractSGMLBlocks splits the document on the transaction-block delimiter
// tag and pulls the raw field values out of each block.
func extractSGMLBlocks(text string) []stmtBlock {
	parts := blockSplit.Split(text, -1)
	if len(parts) < 2 {
		return nil
	}

	blocks := make([]stmtBlock, 0, len(parts)-1)
	for _, part := range parts[1:] {
		blocks = append(blocks, stmtBlock{
			date:   extractValue(part, "DTPOSTED"),
			amount: extractValue(part, "TRNAMT"),
			name:   extractValue(part, "NAME"),
			memo:   extractValue(part, "MEMO"),
		})
	}
	return blocks
}

func extractValue(block, tag string) string {
	match := tagValue[tag].FindStringSubmatch(block)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// liftBlocks turns raw blocks into RawTransactions, silently dropping any
// block with an invalid date, an unparsable amount, or an empty name.
// The synthetic id is the transaction's ordinal in the output list.
func liftBlocks(blocks []stmtBlock) Result {
	var result Result
	for i, block := range blocks {
		date, err := dateutils.NormalizeOFXDate(block.date)
		if err != nil {
			log.WithField("block", i).Debug("Dropping OFX block with invalid date")
			result.Dropped++
			continue
		}

		amount, err := moneyutils.ParseAmount(block.amount)
		if err != nil {
			log.WithField("block", i).Debug("Dropping OFX block with unparsable amount")
			result.Dropped++
			continue
		}

		name := block.name
		if name == "" {
			name = block.memo
		}
		if name == "" {
			log.WithField("block", i).Debug("Dropping OFX block with empty name and memo")
			result.Dropped++
			continue
		}

		result.Transactions = append(result.Transactions, models.RawTransaction{
			ID:          fmt.Sprintf("ofx-%d", len(result.Transactions)),
			Date:        date,
			Amount:      amount,
			Description: name,
			Memo:        block.memo,
			Source:      models.SourceOFX,
		})
	}
	return result
}
