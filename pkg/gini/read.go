package gini

import (
	"github.com/sirupsen/logrus"

	"github.com/beetlebugorg/gini/internal/parser"
)

// ReadData decodes the image payload and returns the requested section of
// the [1, ny, nx] data array.
//
// Calibrated products yield float32 physical values; bytes outside every
// calibration level become NaN. Other products yield raw bytes. A payload
// that cannot be decoded returns an error and no array.
func (p *Product) ReadData(s Section) (*Array, error) {
	raw, err := p.payload()
	if err != nil {
		return nil, err
	}

	var full *Array
	if c := p.p.Calibration; c != nil {
		full, err = NewFloatArray(p.Shape(), c.Convert(raw))
	} else {
		full, err = NewByteArray(p.Shape(), raw)
	}
	if err != nil {
		return nil, err
	}
	return full.Section(s)
}

// ReadAll returns the whole data array.
func (p *Product) ReadAll() (*Array, error) {
	return p.ReadData(FullSection(p.Shape()))
}

// ReadRaw returns the decoded payload bytes before calibration.
func (p *Product) ReadRaw() ([]byte, error) {
	raw, err := p.payload()
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), raw...), nil
}

// payload returns the decoded payload, from the cache when possible. The
// returned slice must not be modified.
func (p *Product) payload() ([]byte, error) {
	layout := p.p.Layout
	mode := p.p.Compression
	key := payloadKey{offset: layout.Offset, mode: mode}
	cacheable := mode != CompressionNone && layout.Nx*layout.Ny <= p.cacheLimit

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrClosed
	}
	if cacheable {
		if v, ok := p.payloads.Get(key); ok {
			p.mu.Unlock()
			return v.([]byte), nil
		}
	}
	p.mu.Unlock()

	raw, err := parser.ReadPayload(p.src, layout, mode)
	if err != nil {
		p.log.WithError(err).WithFields(logrus.Fields{
			"offset":      layout.Offset,
			"compression": mode.String(),
		}).Warn("payload decode failed")
		return nil, err
	}

	if cacheable {
		p.mu.Lock()
		if !p.closed {
			p.payloads.Add(key, raw)
		}
		p.mu.Unlock()
	}
	return raw, nil
}
