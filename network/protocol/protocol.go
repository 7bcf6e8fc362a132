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

// Package protocol enumerates the network/transport families this repository's
// socket-facing packages can be configured for. It is deliberately dependency-free:
// a pure value type shared by config loaders (viper, json, yaml) and by the
// low-level transports that need to pick an address family.
package protocol

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// NetworkProtocol identifies a network family/transport combination.
// The numeric values are part of the wire/config-compatible contract: do not renumber.
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

var protocolNames = map[NetworkProtocol]string{
	NetworkUnix:     "unix",
	NetworkTCP:      "tcp",
	NetworkTCP4:     "tcp4",
	NetworkTCP6:     "tcp6",
	NetworkUDP:      "udp",
	NetworkUDP4:     "udp4",
	NetworkUDP6:     "udp6",
	NetworkIP:       "ip",
	NetworkIP4:      "ip4",
	NetworkIP6:      "ip6",
	NetworkUnixGram: "unixgram",
}

// Int returns the numeric value of the protocol, or 0 for an unknown/out-of-range value.
func (n NetworkProtocol) Int() int {
	if _, ok := protocolNames[n]; !ok {
		return 0
	}
	return int(n)
}

// Int64 returns the numeric value of the protocol as an int64, or 0 if unknown.
func (n NetworkProtocol) Int64() int64 {
	return int64(n.Int())
}

// Uint returns the numeric value of the protocol as a uint, or 0 if unknown.
func (n NetworkProtocol) Uint() uint {
	return uint(n.Int())
}

// String returns the canonical lowercase name of the protocol ("tcp", "udp", "unixgram", ...),
// or "" for NetworkEmpty or an out-of-range value.
func (n NetworkProtocol) String() string {
	return protocolNames[n]
}

// Code is an alias of String kept for symmetry with the rest of this repository's
// enum types, which expose both a human String() and a config-facing Code().
func (n NetworkProtocol) Code() string {
	return n.String()
}

// IsIP reports whether the protocol addresses IP hosts (as opposed to unix sockets).
func (n NetworkProtocol) IsIP() bool {
	switch n {
	case NetworkTCP, NetworkTCP4, NetworkTCP6, NetworkUDP, NetworkUDP4, NetworkUDP6, NetworkIP, NetworkIP4, NetworkIP6:
		return true
	default:
		return false
	}
}

// IsDatagram reports whether the protocol is connectionless (UDP or unix datagram).
func (n NetworkProtocol) IsDatagram() bool {
	switch n {
	case NetworkUDP, NetworkUDP4, NetworkUDP6, NetworkUnixGram:
		return true
	default:
		return false
	}
}

// Parse returns the NetworkProtocol matching s (case-insensitive, surrounding
// whitespace and a single layer of double quotes are trimmed). Returns NetworkEmpty
// if s does not match a known protocol name.
func Parse(s string) NetworkProtocol {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			s = u
		} else {
			s = s[1 : len(s)-1]
		}
	}
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range protocolNames {
		if name == s {
			return p
		}
	}
	return NetworkEmpty
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(b []byte) NetworkProtocol {
	if len(b) == 0 {
		return NetworkEmpty
	}
	return Parse(string(b))
}

// ParseInt64 returns the NetworkProtocol for a previously-obtained Int64 value,
// or NetworkEmpty if out of range.
func ParseInt64(i int64) NetworkProtocol {
	if i < 0 || i > int64(NetworkUnixGram) {
		return NetworkEmpty
	}
	p := NetworkProtocol(i)
	if _, ok := protocolNames[p]; !ok && p != NetworkEmpty {
		return NetworkEmpty
	}
	return p
}

// MarshalJSON implements json.Marshaler.
func (n NetworkProtocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NetworkProtocol) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*n = Parse(s)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (n NetworkProtocol) MarshalYAML() (interface{}, error) {
	return n.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *NetworkProtocol) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*n = Parse(s)
	return nil
}

// ViperDecoderHook returns a mapstructure.DecodeHookFunc usable with
// viper.Unmarshal to decode strings or integers into a NetworkProtocol field.
func ViperDecoderHook() func(reflect.Type, reflect.Type, interface{}) (interface{}, error) {
	target := reflect.TypeOf(NetworkProtocol(0))

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != target {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return Parse(v), nil
		case NetworkProtocol:
			return v, nil
		case int, int8, int16, int32, int64:
			return ParseInt64(reflect.ValueOf(v).Int()), nil
		case uint, uint8, uint16, uint32, uint64:
			return ParseInt64(int64(reflect.ValueOf(v).Uint())), nil
		default:
			return data, nil
		}
	}
}
