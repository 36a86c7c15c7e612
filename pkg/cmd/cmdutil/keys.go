package cmdutil

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// ReadKeys parses whitespace separated int64 keys.
func ReadKeys(r io.Reader) ([]int64, error) {
	var keys []int64

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		key, err := strconv.ParseInt(scanner.Text(), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid key #%d", len(keys)+1)
		}

		keys = append(keys, key)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}

// ReadKeysFromArgs reads the keys from the file named by the first argument, or
// from stdin when there is none or it is "-".
func ReadKeysFromArgs(args []string) ([]int64, error) {
	if len(args) == 0 || args[0] == "-" {
		return ReadKeys(os.Stdin)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadKeys(f)
}
