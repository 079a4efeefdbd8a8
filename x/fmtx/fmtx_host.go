//go:build !(rp2040 || rp2350)

// Package fmtx backs the controller's debug logging (defaultLog in
// controller/controller.go) and the firmware's debug formatting with the same
// call surface on both sides of the host/MCU build split. Host builds
// delegate to fmt; as on the MCU build, Sprint/Fprint/Print put a space
// between every pair of operands.
package fmtx

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultOutput is used by Print/Printf.
var DefaultOutput io.Writer = os.Stdout

func Sprintf(format string, a ...any) string                    { return fmt.Sprintf(format, a...) }
func Printf(format string, a ...any) (int, error)               { return fmt.Fprintf(DefaultOutput, format, a...) }
func Fprintf(w io.Writer, format string, a ...any) (int, error) { return fmt.Fprintf(w, format, a...) }
func Errorf(format string, a ...any) error                      { return fmt.Errorf(format, a...) }
func Sprint(a ...any) string                                    { return strings.TrimSuffix(fmt.Sprintln(a...), "\n") }
func Fprint(w io.Writer, a ...any) (int, error)                 { return io.WriteString(w, Sprint(a...)) }
func Print(a ...any) (int, error)                               { return Fprint(DefaultOutput, a...) }
