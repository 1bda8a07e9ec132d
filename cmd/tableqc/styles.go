package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Console styles for human-facing progress output. Structured logs carry
// the same information for machines; these are just for the terminal.
var (
	styleBanner  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func printSuccess(msg string) { fmt.Println(styleSuccess.Render(msg)) }
func printInfo(msg string)    { fmt.Println(styleInfo.Render(msg)) }
func printWarn(msg string)    { fmt.Println(styleWarn.Render(msg)) }
func printError(msg string)   { fmt.Println(styleError.Render(msg)) }
