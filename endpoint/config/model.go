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

// Package config declares the Endpoint's loadable configuration (§6.5):
// bind address, payload sizing, and optional default client/server protocol
// configs, validated with go-playground/validator and decodable through
// viper the way the rest of this repository's component configs are.
package config

import (
	"fmt"

	libval "github.com/go-playground/validator/v10"

	"github.com/nabbar/golib/errors"
	"github.com/nabbar/golib/network/protocol"
)

// ErrorConfigValidator is returned (wrapped) by Validate when struct tags
// are not satisfied.
const ErrorConfigValidator errors.CodeError = iota + errors.MinPkgEndpoint + 100

func init() {
	errors.RegisterIdFctMessage(ErrorConfigValidator, getMessage)
}

func getMessage(code errors.CodeError) string {
	if code == ErrorConfigValidator {
		return "endpoint config : invalid config"
	}
	return ""
}

// Server names the local address and family an Endpoint listens on.
type Server struct {
	Network protocol.NetworkProtocol `mapstructure:"network" json:"network" yaml:"network" toml:"network" validate:"required"`
	Address string                   `mapstructure:"address" json:"address" yaml:"address" toml:"address" validate:"required"`
}

// Config is the Endpoint's validated configuration (§6.5).
type Config struct {
	// Listen is the local address the endpoint binds.
	Listen Server `mapstructure:"listen" json:"listen" yaml:"listen" toml:"listen" validate:"required"`

	// MaxUDPPayloadSize bounds the size of a single outgoing UDP datagram;
	// the driver never builds a Transmit larger than this value.
	MaxUDPPayloadSize uint16 `mapstructure:"maxUdpPayloadSize" json:"maxUdpPayloadSize" yaml:"maxUdpPayloadSize" toml:"maxUdpPayloadSize" validate:"omitempty,gte=1200,lte=65527"`

	// SendBatchSize and RecvBatchSize bound how many datagrams a single
	// pump iteration attempts to move in one syscall pass.
	SendBatchSize int `mapstructure:"sendBatchSize" json:"sendBatchSize" yaml:"sendBatchSize" toml:"sendBatchSize" validate:"omitempty,gte=1,lte=1024"`
	RecvBatchSize int `mapstructure:"recvBatchSize" json:"recvBatchSize" yaml:"recvBatchSize" toml:"recvBatchSize" validate:"omitempty,gte=1,lte=1024"`

	// HasDefaultClientConfig/HasServerConfig record, at validation time,
	// whether Connect/incoming-accept are expected to succeed; the actual
	// proto-endpoint configuration objects live behind the protocol.Endpoint
	// implementation and are not modeled here.
	HasDefaultClientConfig bool `mapstructure:"hasDefaultClientConfig" json:"hasDefaultClientConfig" yaml:"hasDefaultClientConfig" toml:"hasDefaultClientConfig" validate:""`
	HasServerConfig        bool `mapstructure:"hasServerConfig" json:"hasServerConfig" yaml:"hasServerConfig" toml:"hasServerConfig" validate:""`
}

// DefaultMaxUDPPayloadSize is used when Config.MaxUDPPayloadSize is zero.
const DefaultMaxUDPPayloadSize = 1452

// DefaultBatchSize is used when Config.SendBatchSize/RecvBatchSize is zero.
const DefaultBatchSize = 32

// Validate checks struct tags with go-playground/validator, the way the
// rest of this repository's component configs do.
func (c *Config) Validate() error {
	err := ErrorConfigValidator.Error(nil)

	validate := libval.New()
	if er := validate.Struct(c); er != nil {
		if e, ok := er.(*libval.InvalidValidationError); ok {
			err.Add(e)
		} else if ve, ok := er.(libval.ValidationErrors); ok {
			for _, e := range ve {
				err.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.StructNamespace(), e.ActualTag()))
			}
		} else {
			err.Add(er)
		}
	}

	if err.HasParent() {
		return err
	}
	return nil
}

// MaxPayload returns MaxUDPPayloadSize, or DefaultMaxUDPPayloadSize if unset.
func (c *Config) MaxPayload() int {
	if c.MaxUDPPayloadSize == 0 {
		return DefaultMaxUDPPayloadSize
	}
	return int(c.MaxUDPPayloadSize)
}

// BatchSize returns n if positive, or DefaultBatchSize otherwise.
func batchSize(n int) int {
	if n <= 0 {
		return DefaultBatchSize
	}
	return n
}

// SendBatch returns the effective send-pump batch size.
func (c *Config) SendBatch() int { return batchSize(c.SendBatchSize) }

// RecvBatch returns the effective recv-pump batch size.
func (c *Config) RecvBatch() int { return batchSize(c.RecvBatchSize) }
