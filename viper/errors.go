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

package viper

import (
	liberr "github.com/nabbar/reactor/errors"
)

const (
	ErrorParamEmpty liberr.CodeError = liberr.MinPkgViper + iota
	ErrorParamMissing
	ErrorHomePathNotFound
	ErrorBasePathNotFound
	ErrorRemoteProvider
	ErrorRemoteProviderSecure
	ErrorRemoteProviderRead
	ErrorRemoteProviderMarshall
	ErrorConfigRead
	ErrorConfigReadDefault
	ErrorConfigIsDefault
)

func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgViper, viperMessage)
}

func viperMessage(code liberr.CodeError) string {
	switch code {
	case ErrorParamEmpty:
		return "viper: parameter is empty"
	case ErrorParamMissing:
		return "viper: parameter is missing"
	case ErrorHomePathNotFound:
		return "viper: cannot retrieve home path"
	case ErrorBasePathNotFound:
		return "viper: cannot retrieve base config path"
	case ErrorRemoteProvider:
		return "viper: invalid remote provider"
	case ErrorRemoteProviderSecure:
		return "viper: invalid secure remote provider"
	case ErrorRemoteProviderRead:
		return "viper: cannot read config from remote provider"
	case ErrorRemoteProviderMarshall:
		return "viper: cannot marshall config model for remote provider"
	case ErrorConfigRead:
		return "viper: cannot read config from file"
	case ErrorConfigReadDefault:
		return "viper: cannot read default config"
	case ErrorConfigIsDefault:
		return "viper: using default config"
	default:
		return ""
	}
}
