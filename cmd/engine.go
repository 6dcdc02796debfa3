package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	app "github.com/okian/motorcast/internal/app"
	"github.com/okian/motorcast/internal/domain/model"
)

// engineInput is the file format read by the forecast and suggest commands.
// Files ending in .yaml or .yml are read as YAML, everything else as JSON.
type engineInput struct {
	LearnerName   string                     `json:"learner_name" yaml:"learner_name"`
	LearningStyle string                     `json:"learning_style" yaml:"learning_style"`
	History       []model.EvaluationRecord   `json:"history" yaml:"history"`
	Model         *model.ModelQualitySummary `json:"model" yaml:"model"`
}

func newForecastCommand(state *cli) *cobra.Command {
	var input, name string

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast progress from an evaluation history file",
		Example: `  motorcast forecast --input history.json
  motorcast forecast --input history.yaml --name Mia`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := readInput(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}
			if name != "" {
				in.LearnerName = name
			}
			res, err := newService(state).BuildForecast(&app.ForecastRequest{
				LearnerName: in.LearnerName,
				History:     in.History,
				Model:       in.Model,
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "History file, or - for stdin")
	cmd.Flags().StringVar(&name, "name", "", "Learner name (overrides the file)")
	return cmd
}

func newSuggestCommand(state *cli) *cobra.Command {
	var input, name, style string

	cmd := &cobra.Command{
		Use:     "suggest",
		Short:   "Suggest practice activities from an evaluation history file",
		Example: `  motorcast suggest --input history.json --style visual`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := readInput(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}
			if name != "" {
				in.LearnerName = name
			}
			if style != "" {
				in.LearningStyle = style
			}
			set, err := newService(state).BuildSuggestions(&app.SuggestionRequest{
				LearnerName:   in.LearnerName,
				History:       in.History,
				Model:         in.Model,
				LearningStyle: in.LearningStyle,
			})
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), set)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "History file, or - for stdin")
	cmd.Flags().StringVar(&name, "name", "", "Learner name (overrides the file)")
	cmd.Flags().StringVar(&style, "style", "", "Learning style: visual, auditory or kinesthetic")
	return cmd
}

func readInput(stdin io.Reader, path string) (*engineInput, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	in := &engineInput{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, in)
	default:
		err = json.Unmarshal(raw, in)
	}
	if err != nil {
		return nil, fmt.Errorf("parse input %s: %w", path, err)
	}
	return in, nil
}

func writeOutput(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
