//go:build !unix

package main

import "errors"

func restartProcess(int) error {
	return errors.New("reload by re-exec is only supported on unix; restart the server manually")
}
