package cmd

import (
	"bufio"
	"fmt"
	"os"
)

// openAASFile opens path for reading, exiting the process on error: every
// subcommand here needs a valid file to do anything useful.
func openAASFile(path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		fmt.Println("error,", err)
		os.Exit(1)
	}
	return f
}

func check(err error) {
	if err != nil {
		fmt.Printf("error, %v\n", err)
		os.Exit(1)
	}
}

// confirmIfExists checks that a file exists and asks the user to confirm
// overwriting it. It returns true if the file doesn't exist, or if the
// user answered yes. If ok is false or err is not nil, the operation on
// path should be aborted.
func confirmIfExists(path, msg string) (ok bool, err error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	return askForConfirmation(msg), nil
}

// askForConfirmation shows msg and asks the user to type y or n (ENTER
// defaults to no).
func askForConfirmation(msg string) bool {
	fmt.Println(msg)
	reader := bufio.NewReader(os.Stdin)
	defaultInput := byte('N')

	for {
		input, _ := reader.ReadString('\n')
		c := string([]byte(input)[0])[0]
		if c == 10 {
			c = defaultInput
		}
		switch c {
		case 'Y', 'y':
			return true
		case 'N', 'n':
			return false
		}
	}
}
