// SPDX-License-Identifier: EPL-2.0

package format

import "errors"

var (
	ErrNoProber = errors.New("no prober registered for format")
)
