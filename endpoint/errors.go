/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

package endpoint

import "github.com/nabbar/golib/errors"

const (
	ErrorParamsEmpty errors.CodeError = iota + errors.MinPkgEndpoint
	ErrorValidatorError
	ErrorNoDefaultClientConfig
	ErrorNoServerConfig
	ErrorEndpointStopping
	ErrorInvalidRemoteAddress
	ErrorSocketOpen
	ErrorSocketFatal
	ErrorSocketRebind
	ErrorConnectionRefused
	ErrorHandshakeTimeout
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorParamsEmpty)
	errors.RegisterIdFctMessage(ErrorParamsEmpty, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorParamsEmpty:
		return "given parameters is empty"
	case ErrorValidatorError:
		return "endpoint : invalid config"
	case ErrorNoDefaultClientConfig:
		return "endpoint : connect called without a default client config"
	case ErrorNoServerConfig:
		return "endpoint : incoming connection accepted without a server config"
	case ErrorEndpointStopping:
		return "endpoint : operation rejected, endpoint is closing or stopped"
	case ErrorInvalidRemoteAddress:
		return "endpoint : remote address family does not match the bound socket"
	case ErrorSocketOpen:
		return "endpoint : cannot open or bind the udp socket"
	case ErrorSocketFatal:
		return "endpoint : fatal transport error on the udp socket"
	case ErrorSocketRebind:
		return "endpoint : cannot rebind the udp socket"
	case ErrorConnectionRefused:
		return "endpoint : proto-endpoint refused the outgoing connection"
	case ErrorHandshakeTimeout:
		return "endpoint : handshake did not complete before context deadline"
	}

	return ""
}
