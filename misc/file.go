package misc

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

func ReadFile(fileName string) ([]byte, error) {
	if fileName == "" {
		return []byte{}, errors.New("no filename supplied")
	}
	fileBytes, err := os.ReadFile(fileName)
	if err != nil {
		return []byte{}, fmt.Errorf("unable to read %s - %w", fileName, err)
	}
	return fileBytes, nil
}

func WriteFile(fileName string, contents []byte) (int, error) {
	if fileName == "" {
		return 0, errors.New("no filename supplied")
	}
	// create/truncate file for writing
	file, err := os.Create(fileName)
	if err != nil {
		return 0, fmt.Errorf("unable to create file %s - %w", fileName, err)
	}
	bytesWritten, err := file.Write(contents)
	if err != nil {
		file.Close()
		return bytesWritten, fmt.Errorf("unable to write file %s - %w", fileName, err)
	}
	err = file.Close()
	if err != nil {
		return bytesWritten, fmt.Errorf("unable to close file %s - %w", fileName, err)
	}

	return bytesWritten, nil
}

// ReadJSON decodes a json settings file into v. An empty fileName leaves v untouched so the
// caller's Verify can fill in defaults.
func ReadJSON(fileName string, v interface{}) error {
	if fileName == "" {
		return nil
	}
	fileBytes, err := ReadFile(fileName)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(fileBytes, v); err != nil {
		return fmt.Errorf("unable to decode %s - %w", fileName, err)
	}
	return nil
}
