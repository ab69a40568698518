// SPDX-License-Identifier: EPL-2.0

package tags

import "errors"

var (
	ErrNoTags = errors.New("no readable tags")
)
