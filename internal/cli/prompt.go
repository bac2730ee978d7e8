package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"consultbr_backend/internal/wizard"
)

// backCommand на любом поле возвращает к предыдущему шагу
const backCommand = ":back"

// RunWizard проводит мастер по шагам, читая по одному полю на строку
func RunWizard[T any](ctx context.Context, w *wizard.Wizard[T], in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	for {
		step := w.Current()
		fmt.Fprintf(out, "\nPasso %d/%d: %s\n", w.StepNumber(), w.Total(), step.Name)

		back, err := readFields(reader, out, w.Data(), step.Fields)
		if err != nil {
			return err
		}
		if back {
			if err := w.Back(); err != nil {
				fmt.Fprintln(out, "Já está no primeiro passo.")
			}
			continue
		}

		if w.IsLast() {
			err := w.Commit(ctx)
			if err == nil {
				return nil
			}
			var stepErr *wizard.StepError
			if !errors.As(err, &stepErr) {
				return err
			}
			fmt.Fprintf(out, "Corrija: %v\n", stepErr.Err)
			continue
		}

		if err := w.Next(); err != nil {
			fmt.Fprintf(out, "Corrija: %v\n", unwrapStep(err))
		}
	}
}

func readFields[T any](reader *bufio.Reader, out io.Writer, data *T, fields []wizard.Field[T]) (bool, error) {
	for _, f := range fields {
		for {
			label := f.Label
			if f.Optional {
				label += " (opcional)"
			}
			fmt.Fprintf(out, "%s: ", label)

			line, err := reader.ReadString('\n')
			if err != nil && !(errors.Is(err, io.EOF) && line != "") {
				if errors.Is(err, io.EOF) {
					return false, io.ErrUnexpectedEOF
				}
				return false, err
			}
			line = strings.TrimRight(line, "\r\n")

			if strings.TrimSpace(line) == backCommand {
				return true, nil
			}
			if err := f.Set(data, line); err != nil {
				fmt.Fprintf(out, "Valor inválido: %v\n", err)
				continue
			}
			break
		}
	}
	return false, nil
}

func unwrapStep(err error) error {
	var stepErr *wizard.StepError
	if errors.As(err, &stepErr) {
		return stepErr.Err
	}
	return err
}
