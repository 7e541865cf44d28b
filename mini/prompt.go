package mini

import (
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/marquee-cli/marquee/icon"
	"github.com/marquee-cli/marquee/key"
	"github.com/marquee-cli/marquee/style"
	"github.com/marquee-cli/marquee/util"
	"github.com/spf13/viper"
)

// Prompter asks the user things.
type Prompter interface {
	// Select returns the index of the chosen option.
	Select(message string, options []string) (int, error)
	Input(message string, suggest func(string) []string) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Select(message string, options []string) (int, error) {
	var index int
	err := survey.AskOne(&survey.Select{
		Message:  message,
		Options:  options,
		PageSize: max(1, viper.GetInt(key.MiniPageSize)),
	}, &index)
	return index, err
}

func (surveyPrompter) Input(message string, suggest func(string) []string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Input{
		Message: message,
		Suggest: suggest,
	}, &answer, survey.WithValidator(survey.Required))
	return answer, err
}

func title(w io.Writer, s string) {
	fmt.Fprintln(w, style.Title(s))
}

func fail(w io.Writer, s string) {
	fmt.Fprintln(w, style.Fg(style.ErrorColor)(icon.Get(icon.Fail)+" "+s))
}

// progress prints s until the returned func erases it. Nothing is printed
// when w is not the terminal.
func (m *mini) progress(s string) (erase func()) {
	if !m.interactive {
		return func() {}
	}
	return util.PrintErasable(icon.Get(icon.Progress) + " " + s)
}
