package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/oleiade/gomme"

	"github.com/xymaxim/ypdl/internal/media"
)

var (
	ErrInvalidFormat    = errors.New("format must be 'mp4' or 'mp3'")
	ErrNotPositive      = errors.New("number must be positive")
	ErrNotNumber        = errors.New("not a number")
	ErrChoiceOutOfRange = errors.New("choice out of range")
)

// normalize trims surrounding whitespace and lowercases an answer.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseOutputFormat parses an output format answer, case-insensitively.
func ParseOutputFormat(answer string) (media.OutputFormat, error) {
	result := gomme.Map(
		gomme.Terminated(
			gomme.Alternative(
				gomme.Token[string](string(media.FormatVideo)),
				gomme.Token[string](string(media.FormatAudio)),
			),
			eof[string](),
		),
		func(s string) (media.OutputFormat, error) {
			return media.OutputFormat(s), nil
		},
	)(normalize(answer))
	if result.Err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, answer)
	}
	return result.Output, nil
}

// ParsePositiveInt parses a strictly positive decimal integer.
func ParsePositiveInt(answer string) (int, error) {
	result := tillEnd(integer[string]())(strings.TrimSpace(answer))
	if result.Err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, answer)
	}
	if result.Output <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrNotPositive, result.Output)
	}
	return result.Output, nil
}

// ParseChoice parses a 1-based choice among n items and returns its 0-based
// index.
func ParseChoice(answer string, n int) (int, error) {
	choice, err := ParsePositiveInt(answer)
	if err != nil {
		return -1, err
	}
	if choice > n {
		return -1, fmt.Errorf("%w: %d not in 1..%d", ErrChoiceOutOfRange, choice, n)
	}
	return choice - 1, nil
}

// ParseConfirmation reports whether the answer is an affirmative "y" or
// "yes". Anything else, including an empty answer, is a refusal.
func ParseConfirmation(answer string) bool {
	result := gomme.Alternative(
		gomme.Terminated(gomme.Token[string]("yes"), eof[string]()),
		gomme.Terminated(gomme.Token[string]("y"), eof[string]()),
	)(normalize(answer))
	return result.Err == nil
}

func eof[Input gomme.Bytes]() gomme.Parser[Input, Input] {
	return func(input Input) gomme.Result[Input, Input] {
		if len(input) == 0 {
			return gomme.Success(input, input)
		}
		return gomme.Failure[Input, Input](
			gomme.NewError(input, "end of input"),
			input,
		)
	}
}

func integer[Input gomme.Bytes]() gomme.Parser[Input, int] {
	return func(input Input) gomme.Result[int, Input] {
		parser := gomme.Recognize(gomme.Digit1[Input]())

		result := parser(input)
		if result.Err != nil {
			return gomme.Failure[Input, int](gomme.NewError(input, "integer"), input)
		}

		n, err := strconv.Atoi(string(result.Output))
		if err != nil {
			return gomme.Failure[Input, int](gomme.NewError(input, "integer"), input)
		}

		return gomme.Success(n, result.Remaining)
	}
}

func tillEnd[Input gomme.Bytes, Output any](
	parser gomme.Parser[Input, Output],
) gomme.Parser[Input, Output] {
	return func(input Input) gomme.Result[Output, Input] {
		result := parser(input)
		if result.Err != nil || len(result.Remaining) != 0 {
			return gomme.Failure[Input, Output](
				gomme.NewError(input, "tillEnd"),
				input,
			)
		}
		return gomme.Success(result.Output, result.Remaining)
	}
}
