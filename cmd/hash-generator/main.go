// Command hash-generator prints bcrypt hashes for seeding user rows, using
// the same hasher and cost levels as the API.
//
//	hash-generator -cost 12 'first password' 'second password'
//	echo 'from stdin' | hash-generator
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/taskify-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", auth.CostStandard, "bcrypt cost")
	flag.Parse()

	passwords := flag.Args()
	if len(passwords) == 0 {
		var err error
		passwords, err = readLines(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read passwords: %v\n", err)
			os.Exit(1)
		}
	}

	if err := writeHashes(os.Stdout, auth.NewBcryptHasher(), *cost, passwords); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// writeHashes writes one hash per password, in order.
func writeHashes(w io.Writer, hasher auth.PasswordHasher, cost int, passwords []string) error {
	for _, password := range passwords {
		hash, err := hasher.Hash(password, cost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		if _, err := fmt.Fprintln(w, hash); err != nil {
			return err
		}
	}
	return nil
}
