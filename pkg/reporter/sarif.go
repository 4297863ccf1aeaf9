package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yaklabco/goeclint/pkg/config"
	"github.com/yaklabco/goeclint/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const toolInformationURI = "https://github.com/yaklabco/goeclint"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule (one editorconfig setting).
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single result (violation).
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains a message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation represents a location in source.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation identifies the file.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion identifies a region in the file.
type SARIFRegion struct {
	StartLine   int                   `json:"startLine"`
	StartColumn int                   `json:"startColumn,omitempty"`
	Snippet     *SARIFMultiformatText `json:"snippet,omitempty"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = DefaultOptions().ToolVersion
	}

	output := &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []SARIFRun{{
			Tool: SARIFTool{
				Driver: SARIFDriver{
					Name:           "goeclint",
					Version:        version,
					InformationURI: toolInformationURI,
					Rules:          make([]SARIFRule, 0),
				},
			},
			Results: make([]SARIFResult, 0),
		}},
	}

	if result == nil {
		return output
	}

	run := &output.Runs[0]
	ruleIndex := make(map[string]int)

	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		uri := filepath.ToSlash(r.opts.displayPath(file.Path))

		for _, v := range file.Result.Violations {
			idx, seen := ruleIndex[v.Rule]
			if !seen {
				idx = len(run.Tool.Driver.Rules)
				ruleIndex[v.Rule] = idx
				run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, r.describeRule(v.Rule, v.Severity))
			}

			location := SARIFLocation{
				PhysicalLocation: SARIFPhysicalLocation{
					ArtifactLocation: SARIFArtifactLocation{URI: uri},
				},
			}
			// Document-level violations carry no line.
			if v.Line > 0 {
				region := &SARIFRegion{StartLine: v.Line, StartColumn: v.Column}
				if v.Source != "" {
					region.Snippet = &SARIFMultiformatText{Text: v.Source}
				}
				location.PhysicalLocation.Region = region
			}

			run.Results = append(run.Results, SARIFResult{
				RuleID:    v.Rule,
				RuleIndex: idx,
				Level:     severityToSARIFLevel(v.Severity),
				Message:   SARIFMessage{Text: v.Message},
				Locations: []SARIFLocation{location},
			})
		}
	}

	return output
}

func (r *SARIFReporter) describeRule(name string, severity config.Severity) SARIFRule {
	rule := SARIFRule{
		ID:               name,
		Name:             name,
		ShortDescription: SARIFMultiformatText{Text: name},
		DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(severity)},
	}

	if r.opts.Rules != nil {
		if known, ok := r.opts.Rules.Get(name); ok {
			rule.ShortDescription.Text = known.Description()
			rule.Properties = map[string]any{
				"scope":   known.Scope().String(),
				"fixable": known.CanFix(),
			}
		}
	}

	return rule
}

// severityToSARIFLevel converts a goeclint severity to a SARIF level.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityWarning:
		return "warning"
	case config.SeverityInfo:
		return "note"
	default:
		return "error"
	}
}
