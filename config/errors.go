/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package config

import (
	liberr "github.com/nabbar/reactor/errors"
)

const (
	ErrorParamEmpty liberr.CodeError = liberr.MinPkgConfig + iota
	ErrorConfigRead
	ErrorConfigUnmarshal
	ErrorConfigValidate
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgConfig, configMessage)
}

func configMessage(code liberr.CodeError) string {
	switch code {
	case ErrorParamEmpty:
		return "config: given parameter is empty"
	case ErrorConfigRead:
		return "config: cannot read configuration source"
	case ErrorConfigUnmarshal:
		return "config: cannot decode configuration into the target struct"
	case ErrorConfigValidate:
		return "config: configuration failed validation"
	default:
		return ""
	}
}
