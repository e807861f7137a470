package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var subsetSumKeywords = []string{
	"subset", "sum", "add up", "adds up", "combination", "combine",
	"target", "total", "pick", "choose", "select", "reach",
	"numbers", "integers", "values", "array", "list",
}

// targetPattern matches phrases that introduce the target, e.g. "sums to 9",
// "add up to 9", "target: 9", "equal 9", "= 9". The last match wins.
var targetPattern = regexp.MustCompile(
	`(?i)(?:sums?\s+(?:up\s+)?to|adds?\s+up\s+to|add\s+to|totals?(?:\s+of)?|target(?:\s+(?:sum|of|is))?|equals?(?:\s+to)?|makes?|reach(?:es)?|=)\s*[:=]?\s*(-?\d+(?:\.\d+)?)`,
)

// numberPattern matches whole numeric tokens so "6.5" is one token, not 6 and 5.
var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// rangePattern matches "10-20" and en-dash ranges; a minus directly after a
// digit is a range, not a negative number.
var rangePattern = regexp.MustCompile(`\d(?:-|\s*\x{2013}\s*)\d`)

// ParsedPrompt is a subset-sum question extracted from natural language
type ParsedPrompt struct {
	Magnitudes []int
	Target     int
	Confidence float64
	Score      int
	Reasoning  string
}

// PromptParser extracts magnitudes and a target from a natural language
// prompt so simple questions can be answered without an LLM round trip
type PromptParser struct {
	minConfidence float64
}

func NewPromptParser(minConfidence float64) *PromptParser {
	return &PromptParser{minConfidence: minConfidence}
}

// Parse returns the extracted question and whether it is confident enough
// to be answered directly. Magnitudes are returned as written; validation
// is left to the solver.
func (p *PromptParser) Parse(prompt string) (ParsedPrompt, bool) {
	lower := strings.ToLower(prompt)

	score := 0
	for _, kw := range subsetSumKeywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}

	if r := rangePattern.FindString(prompt); r != "" {
		return ParsedPrompt{Score: score, Reasoning: "numeric range: " + r}, false
	}

	matches := targetPattern.FindAllStringSubmatchIndex(prompt, -1)
	if len(matches) == 0 {
		return ParsedPrompt{Score: score, Reasoning: "no target phrase found"}, false
	}
	last := matches[len(matches)-1]
	targetTok := prompt[last[2]:last[3]]
	if isFractional(targetTok) {
		return ParsedPrompt{Score: score, Reasoning: "non-integer number: " + targetTok}, false
	}
	target, err := strconv.Atoi(targetTok)
	if err != nil {
		return ParsedPrompt{Score: score, Reasoning: "target is not a valid integer"}, false
	}

	// everything outside the target phrase is a candidate magnitude
	rest := prompt[:last[0]] + " " + prompt[last[1]:]
	var magnitudes []int
	for _, tok := range numberPattern.FindAllString(rest, -1) {
		if isFractional(tok) {
			return ParsedPrompt{Score: score, Reasoning: "non-integer number: " + tok}, false
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return ParsedPrompt{Score: score, Reasoning: "number out of range: " + tok}, false
		}
		magnitudes = append(magnitudes, v)
	}
	if len(magnitudes) == 0 {
		return ParsedPrompt{Target: target, Score: score, Reasoning: "no magnitudes found"}, false
	}

	confidence := math.Min(1.0, 0.5+0.1*float64(score))
	parsed := ParsedPrompt{
		Magnitudes: magnitudes,
		Target:     target,
		Confidence: confidence,
		Score:      score,
		Reasoning:  "prompt contains a target phrase and subset-sum keywords",
	}
	if confidence < p.minConfidence {
		parsed.Reasoning = "too few subset-sum keywords"
		return parsed, false
	}
	return parsed, true
}

func isFractional(tok string) bool {
	return strings.Contains(tok, ".")
}
