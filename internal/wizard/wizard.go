package wizard

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrFirstStep        = errors.New("already at the first step")
	ErrLastStep         = errors.New("already at the last step, commit instead")
	ErrNotFinalStep     = errors.New("commit is only allowed at the final step")
	ErrAlreadyCommitted = errors.New("wizard already committed")
)

// Field - одно поле шага; интерактивный ввод читает поля по одному
type Field[T any] struct {
	Name     string
	Label    string
	Optional bool
	Set      func(data *T, value string) error
}

// Step - именованный шаг с проверкой накопленных данных
type Step[T any] struct {
	Name     string
	Fields   []Field[T]
	Validate func(data *T) error
}

// SubmitFunc вызывается ровно один раз на успешный Commit
type SubmitFunc[T any] func(ctx context.Context, data *T) error

// Wizard - пошаговое заполнение одной структуры T
type Wizard[T any] struct {
	steps     []Step[T]
	current   int
	data      T
	submit    SubmitFunc[T]
	committed bool
}

func New[T any](steps []Step[T], submit SubmitFunc[T]) *Wizard[T] {
	if len(steps) == 0 {
		panic("wizard: at least one step is required")
	}
	return &Wizard[T]{steps: steps, submit: submit}
}

// Data - накопленные данные; шаги пишут в них через Field.Set
func (w *Wizard[T]) Data() *T { return &w.data }

func (w *Wizard[T]) Current() Step[T] { return w.steps[w.current] }

// StepNumber - номер текущего шага, 1..N
func (w *Wizard[T]) StepNumber() int { return w.current + 1 }

func (w *Wizard[T]) Total() int { return len(w.steps) }

func (w *Wizard[T]) IsLast() bool { return w.current == len(w.steps)-1 }

func (w *Wizard[T]) Committed() bool { return w.committed }

// Next переходит к следующему шагу, только если текущий валиден
func (w *Wizard[T]) Next() error {
	if w.IsLast() {
		return ErrLastStep
	}
	if err := w.validateCurrent(); err != nil {
		return err
	}
	w.current++
	return nil
}

// Back возвращает на шаг назад, данные сохраняются
func (w *Wizard[T]) Back() error {
	if w.current == 0 {
		return ErrFirstStep
	}
	w.current--
	return nil
}

// Commit проверяет последний шаг и отправляет данные
func (w *Wizard[T]) Commit(ctx context.Context) error {
	if w.committed {
		return ErrAlreadyCommitted
	}
	if !w.IsLast() {
		return ErrNotFinalStep
	}
	if err := w.validateCurrent(); err != nil {
		return err
	}
	if err := w.submit(ctx, &w.data); err != nil {
		return err
	}
	w.committed = true
	return nil
}

func (w *Wizard[T]) validateCurrent() error {
	step := w.steps[w.current]
	if step.Validate == nil {
		return nil
	}
	if err := step.Validate(&w.data); err != nil {
		return &StepError{Step: step.Name, Err: err}
	}
	return nil
}

// StepError - шаг не прошел проверку
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("step %q: %v", e.Step, e.Err) }

func (e *StepError) Unwrap() error { return e.Err }
