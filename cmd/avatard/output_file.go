package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

type OutputHandler interface {
	Output(img image.Image) error
	Close() error
	GetType() string
}

type OutputManager struct {
	handlers []OutputHandler
}

func NewOutputManager() *OutputManager {
	return &OutputManager{
		handlers: make([]OutputHandler, 0),
	}
}

func (om *OutputManager) AddHandler(handler OutputHandler) {
	om.handlers = append(om.handlers, handler)
}

func (om *OutputManager) Output(img image.Image) error {
	var lastErr error
	hasSuccess := false

	for _, handler := range om.handlers {
		if err := handler.Output(img); err != nil {
			logWarnModule("output", "%s failed: %v", handler.GetType(), err)
			lastErr = err
		} else {
			hasSuccess = true
		}
	}

	if !hasSuccess && lastErr != nil {
		return lastErr
	}

	return nil
}

func (om *OutputManager) Close() {
	for _, handler := range om.handlers {
		handler.Close()
	}
}

type FileOutputHandler struct {
	filePath string
}

func NewFileOutputHandler(filePath string) *FileOutputHandler {
	return &FileOutputHandler{
		filePath: filePath,
	}
}

func (f *FileOutputHandler) GetType() string {
	return "file"
}

func (f *FileOutputHandler) Output(img image.Image) error {
	file, err := os.Create(f.filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return png.Encode(file, img)
}

func (f *FileOutputHandler) Close() error {
	return nil
}

// StdoutOutputHandler streams the PNG to standard output for piping
// into other tools.
type StdoutOutputHandler struct{}

func (StdoutOutputHandler) GetType() string { return "stdout" }

func (StdoutOutputHandler) Output(img image.Image) error {
	return png.Encode(os.Stdout, img)
}

func (StdoutOutputHandler) Close() error { return nil }
