package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"go.uber.org/zap"

	"github.com/arodidev/openmrs-form-builder/pkg/builder"
	"github.com/arodidev/openmrs-form-builder/pkg/notify"
	"github.com/arodidev/openmrs-form-builder/pkg/schema"
)

const (
	actionRenameForm    = "Rename form"
	actionRenamePage    = "Rename page"
	actionRenameSection = "Rename section"
	actionAddPage       = "Add page"
	actionAddSection    = "Add section"
	actionDuplicate     = "Duplicate question"
	actionDeleteQ       = "Delete question"
	actionSave          = "Save and quit"
	actionQuit          = "Quit without saving"
)

// runEdit drives an interactive editing loop over the loaded form. Every
// operation goes through the builder so outcomes reach the terminal the same
// way they would reach a host notification surface.
func runEdit(logger *zap.Logger, form *schema.Form, path string) error {
	b := builder.New(form, builder.WithNotifier(notify.Func(func(n notify.Notification) {
		if n.Message != "" {
			fmt.Printf("[%s] %s: %s\n", n.Kind, n.Title, n.Message)
			return
		}
		fmt.Printf("[%s] %s\n", n.Kind, n.Title)
	})))

	for {
		action, err := pickAction()
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}

		switch action {
		case actionRenameForm:
			name, err := askText("New form name", form.Name)
			if err != nil {
				return err
			}
			_ = b.RenameForm(name)
		case actionRenamePage:
			page, ok, err := pickPage(form)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			label, err := askText("New page label", form.Pages[page].Label)
			if err != nil {
				return err
			}
			_ = b.RenamePage(page, label)
		case actionRenameSection:
			page, section, ok, err := pickSection(form)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			label, err := askText("New section label", form.Pages[page].Sections[section].Label)
			if err != nil {
				return err
			}
			_ = b.RenameSection(page, section, label)
		case actionAddPage:
			label, err := askText("Page label", "")
			if err != nil {
				return err
			}
			_ = b.AddPage(label)
		case actionAddSection:
			page, ok, err := pickPage(form)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			label, err := askText("Section label", "")
			if err != nil {
				return err
			}
			_ = b.AddSection(page, label)
		case actionDuplicate:
			page, section, question, ok, err := pickQuestion(form)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			_ = b.DuplicateQuestion(page, section, question)
		case actionDeleteQ:
			page, section, question, ok, err := pickQuestion(form)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			_ = b.DeleteQuestion(page, section, question)
		case actionSave:
			data, err := schema.Marshal(*form)
			if err != nil {
				return err
			}
			if err := writeOut(path, data); err != nil {
				return err
			}
			logger.Info("form saved", zap.String("path", path))
			return nil
		case actionQuit:
			return nil
		}
	}
}

func pickAction() (string, error) {
	var action string
	prompt := &survey.Select{
		Message: "Action",
		Options: []string{
			actionRenameForm, actionRenamePage, actionRenameSection,
			actionAddPage, actionAddSection,
			actionDuplicate, actionDeleteQ,
			actionSave, actionQuit,
		},
	}
	if err := survey.AskOne(prompt, &action); err != nil {
		return "", err
	}
	return action, nil
}

func askText(message, def string) (string, error) {
	var out string
	prompt := &survey.Input{Message: message, Default: def}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", err
	}
	return out, nil
}

func pickIndex(message string, options []string) (int, bool, error) {
	if len(options) == 0 {
		fmt.Println("nothing to pick")
		return 0, false, nil
	}
	var choice string
	prompt := &survey.Select{Message: message, Options: options}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return 0, false, err
	}
	for i, opt := range options {
		if opt == choice {
			return i, true, nil
		}
	}
	return 0, false, nil
}

func pickPage(form *schema.Form) (int, bool, error) {
	options := make([]string, len(form.Pages))
	for i, p := range form.Pages {
		options[i] = strconv.Itoa(i) + ": " + p.Label
	}
	return pickIndex("Page", options)
}

func pickSection(form *schema.Form) (int, int, bool, error) {
	page, ok, err := pickPage(form)
	if err != nil || !ok {
		return 0, 0, false, err
	}
	sections := form.Pages[page].Sections
	options := make([]string, len(sections))
	for i, s := range sections {
		options[i] = strconv.Itoa(i) + ": " + s.Label
	}
	section, ok, err := pickIndex("Section", options)
	return page, section, ok, err
}

func pickQuestion(form *schema.Form) (int, int, int, bool, error) {
	page, section, ok, err := pickSection(form)
	if err != nil || !ok {
		return 0, 0, 0, false, err
	}
	questions := form.Pages[page].Sections[section].Questions
	options := make([]string, len(questions))
	for i, q := range questions {
		options[i] = q.ID + ": " + q.Label
	}
	question, ok, err := pickIndex("Question", options)
	return page, section, question, ok, err
}
