package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ProgramSink adapts a running tea.Program to the session's Sink interface.
// Every session emission becomes a message so rendering stays on the
// program's single update loop.
type ProgramSink struct {
	p *tea.Program
}

func NewProgramSink(p *tea.Program) *ProgramSink {
	return &ProgramSink{p: p}
}

func (s *ProgramSink) Print(line string)             { s.p.Send(LogLineMsg{Line: line}) }
func (s *ProgramSink) BuildStarted()                 { s.p.Send(BuildStartMsg{}) }
func (s *ProgramSink) BuildProgress(percent float64) { s.p.Send(BuildProgressMsg{Percent: percent}) }
func (s *ProgramSink) BuildFinished()                { s.p.Send(BuildDoneMsg{}) }
func (s *ProgramSink) ClearScreen()                  { s.p.Send(ClearScreenMsg{}) }
