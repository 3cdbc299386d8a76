package ui

import (
	"os"
	"strconv"
	"strings"
	"sync/atomic"
)

var wrapWidth atomic.Int64

// SetWrapWidth sets the column at which renderer output wraps. Zero disables wrapping.
func SetWrapWidth(width int) {
	if width < 0 {
		width = 0
	}
	wrapWidth.Store(int64(width))
}

// WrapWidthFromEnv reads COLUMNS, returning 0 when unset or invalid.
func WrapWidthFromEnv() int {
	value := strings.TrimSpace(os.Getenv("COLUMNS"))
	if value == "" {
		return 0
	}
	width, err := strconv.Atoi(value)
	if err != nil || width <= 0 {
		return 0
	}
	return width
}

func currentWrapWidth() int {
	return int(wrapWidth.Load())
}
