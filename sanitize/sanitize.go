// Package sanitize masks, hashes, encrypts and redacts named fields of captured trees
// before they leave the process.
//
// Rules are keyed by field name and apply to struct and struct-variant fields
// and to string-keyed map entries. A rule transforms the String, Bytes and
// Char leaves of the matched value, looking through options, newtypes,
// sequences and tuples. Other leaves are left as they are.
package sanitize

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/zoobzio/imprint"
)

// ErrInvalidRule is returned by New for a rule naming an unknown mask type,
// hash algorithm or encryption algorithm, or a field given two rules.
var ErrInvalidRule = errors.New("invalid sanitize rule")

type action uint8

const (
	actionMask action = iota + 1
	actionHash
	actionRedact
	actionEncrypt
)

var actionNames = [...]string{
	actionMask:    "mask",
	actionHash:    "hash",
	actionRedact:  "redact",
	actionEncrypt: "encrypt",
}

type rule struct {
	field       string
	action      action
	mask        MaskType
	hash        HashAlgo
	encrypt     EncryptAlgo
	replacement string
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithMask masks the named field with the masker registered for mt.
func WithMask(field string, mt MaskType) Option {
	return func(s *Sanitizer) {
		s.rules = append(s.rules, rule{field: field, action: actionMask, mask: mt})
	}
}

// WithHash replaces the named field with its hash under algo.
func WithHash(field string, algo HashAlgo) Option {
	return func(s *Sanitizer) {
		s.rules = append(s.rules, rule{field: field, action: actionHash, hash: algo})
	}
}

// WithRedact replaces the named field with replacement.
func WithRedact(field, replacement string) Option {
	return func(s *Sanitizer) {
		s.rules = append(s.rules, rule{field: field, action: actionRedact, replacement: replacement})
	}
}

// WithEncrypt replaces the named field with its ciphertext under the
// encryptor registered for algo. Bytes stay Bytes; text becomes base64.
func WithEncrypt(field string, algo EncryptAlgo) Option {
	return func(s *Sanitizer) {
		s.rules = append(s.rules, rule{field: field, action: actionEncrypt, encrypt: algo})
	}
}

// WithMasker registers m for mt, replacing any builtin masker of that type.
func WithMasker(mt MaskType, m Masker) Option {
	return func(s *Sanitizer) { s.maskers[mt] = m }
}

// WithHasher registers h for algo, replacing any builtin hasher of that name.
func WithHasher(algo HashAlgo, h Hasher) Option {
	return func(s *Sanitizer) { s.hashers[algo] = h }
}

// WithEncryptor registers e for algo. No encryptor is registered by default.
func WithEncryptor(algo EncryptAlgo, e Encryptor) Option {
	return func(s *Sanitizer) { s.encryptors[algo] = e }
}

// Sanitizer applies field rules to captured trees. It is immutable once
// built and safe for concurrent use.
type Sanitizer struct {
	rules      []rule
	byField    map[string]rule
	maskers    map[MaskType]Masker
	hashers    map[HashAlgo]Hasher
	encryptors map[EncryptAlgo]Encryptor
}

// New builds a Sanitizer and validates its rules.
func New(opts ...Option) (*Sanitizer, error) {
	s := &Sanitizer{
		maskers:    builtinMaskers(),
		hashers:    builtinHashers(),
		encryptors: make(map[EncryptAlgo]Encryptor),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.byField = make(map[string]rule, len(s.rules))
	for _, r := range s.rules {
		if _, dup := s.byField[r.field]; dup {
			return nil, fmt.Errorf("%w: field %q has more than one rule", ErrInvalidRule, r.field)
		}
		switch r.action {
		case actionMask:
			if s.maskers[r.mask] == nil {
				return nil, fmt.Errorf("%w: unknown mask type %q for field %s", ErrInvalidRule, r.mask, r.field)
			}
		case actionHash:
			if s.hashers[r.hash] == nil {
				return nil, fmt.Errorf("%w: unknown hash algorithm %q for field %s", ErrInvalidRule, r.hash, r.field)
			}
		case actionEncrypt:
			if s.encryptors[r.encrypt] == nil {
				return nil, fmt.Errorf("%w: no encryptor for %q (field %s)", ErrInvalidRule, r.encrypt, r.field)
			}
		}
		s.byField[r.field] = r
	}
	return s, nil
}

// counts tallies the leaves changed by one Apply call.
type counts struct {
	masked, hashed, encrypted, redacted int
}

// Apply returns a copy of v with every rule applied. v is not modified.
func (s *Sanitizer) Apply(ctx context.Context, v imprint.Value) (imprint.Value, error) {
	start := time.Now()
	var n counts
	out, err := s.walk(v, &n)
	emitSanitizeComplete(ctx, time.Since(start), n, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// walk copies v, applying rules at matching fields and entries.
func (s *Sanitizer) walk(v imprint.Value, n *counts) (imprint.Value, error) {
	switch x := v.(type) {
	case imprint.Struct:
		fields, err := s.fields(x.Fields, n)
		if err != nil {
			return nil, err
		}
		return imprint.Struct{Name: x.Name, Fields: fields}, nil
	case imprint.StructVariant:
		fields, err := s.fields(x.Fields, n)
		if err != nil {
			return nil, err
		}
		return imprint.StructVariant{Variant: x.Variant, Fields: fields}, nil
	case imprint.Map:
		entries := make([]imprint.Entry, len(x.Entries))
		for i, e := range x.Entries {
			key := imprint.Clone(e.Key)
			val, err := s.entry(e, n)
			if err != nil {
				return nil, err
			}
			entries[i] = imprint.Entry{Key: key, Value: val}
		}
		return imprint.Map{Entries: entries}, nil
	case imprint.Option:
		if x.IsNone() {
			return x, nil
		}
		inner, err := s.walk(x.Some, n)
		if err != nil {
			return nil, err
		}
		return imprint.Some(inner), nil
	case imprint.NewtypeStruct:
		inner, err := s.walk(x.Inner, n)
		if err != nil {
			return nil, err
		}
		return imprint.NewtypeStruct{Name: x.Name, Inner: inner}, nil
	case imprint.NewtypeVariant:
		inner, err := s.walk(x.Inner, n)
		if err != nil {
			return nil, err
		}
		return imprint.NewtypeVariant{Variant: x.Variant, Inner: inner}, nil
	case imprint.Seq:
		elems, err := s.elems(x.Elems, n)
		return imprint.Seq{Elems: elems}, err
	case imprint.Tuple:
		elems, err := s.elems(x.Elems, n)
		return imprint.Tuple{Elems: elems}, err
	case imprint.TupleStruct:
		elems, err := s.elems(x.Elems, n)
		return imprint.TupleStruct{Name: x.Name, Elems: elems}, err
	case imprint.TupleVariant:
		elems, err := s.elems(x.Elems, n)
		return imprint.TupleVariant{Variant: x.Variant, Elems: elems}, err
	}
	return imprint.Clone(v), nil
}

func (s *Sanitizer) elems(in []imprint.Value, n *counts) ([]imprint.Value, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]imprint.Value, len(in))
	for i, e := range in {
		v, err := s.walk(e, n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (s *Sanitizer) fields(in []imprint.Field, n *counts) ([]imprint.Field, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]imprint.Field, len(in))
	for i, f := range in {
		out[i].Name = f.Name
		if f.Skipped() {
			continue
		}
		var err error
		if r, ok := s.byField[f.Name]; ok {
			out[i].Value, err = s.apply(r, f.Value, n)
		} else {
			out[i].Value, err = s.walk(f.Value, n)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Sanitizer) entry(e imprint.Entry, n *counts) (imprint.Value, error) {
	if key, ok := e.Key.(imprint.String); ok {
		if r, ok := s.byField[string(key)]; ok {
			return s.apply(r, e.Value, n)
		}
	}
	return s.walk(e.Value, n)
}

// apply transforms the text leaves of a matched value.
func (s *Sanitizer) apply(r rule, v imprint.Value, n *counts) (imprint.Value, error) {
	switch x := v.(type) {
	case imprint.String:
		return s.transform(r, string(x), n)
	case imprint.Char:
		return s.transform(r, string(rune(x)), n)
	case imprint.Bytes:
		return s.transformBytes(r, x, n)
	case imprint.Option:
		if x.IsNone() {
			return x, nil
		}
		inner, err := s.apply(r, x.Some, n)
		if err != nil {
			return nil, err
		}
		return imprint.Some(inner), nil
	case imprint.NewtypeStruct:
		inner, err := s.apply(r, x.Inner, n)
		if err != nil {
			return nil, err
		}
		return imprint.NewtypeStruct{Name: x.Name, Inner: inner}, nil
	case imprint.NewtypeVariant:
		inner, err := s.apply(r, x.Inner, n)
		if err != nil {
			return nil, err
		}
		return imprint.NewtypeVariant{Variant: x.Variant, Inner: inner}, nil
	case imprint.Seq:
		elems, err := s.applyElems(r, x.Elems, n)
		return imprint.Seq{Elems: elems}, err
	case imprint.Tuple:
		elems, err := s.applyElems(r, x.Elems, n)
		return imprint.Tuple{Elems: elems}, err
	}
	return imprint.Clone(v), nil
}

func (s *Sanitizer) applyElems(r rule, in []imprint.Value, n *counts) ([]imprint.Value, error) {
	out := make([]imprint.Value, len(in))
	for i, e := range in {
		v, err := s.apply(r, e, n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// transformBytes keeps masked, encrypted and redacted bytes as Bytes. A hash
// is always text.
func (s *Sanitizer) transformBytes(r rule, b imprint.Bytes, n *counts) (imprint.Value, error) {
	switch r.action {
	case actionEncrypt:
		ct, err := s.encrypt(r, b, n)
		if err != nil {
			return nil, err
		}
		return imprint.Bytes(ct), nil
	case actionHash:
		return s.transform(r, string(b), n)
	}
	out, err := s.transform(r, string(b), n)
	if err != nil {
		return nil, err
	}
	return imprint.Bytes(out.(imprint.String)), nil
}

func (s *Sanitizer) encrypt(r rule, plaintext []byte, n *counts) ([]byte, error) {
	ct, err := s.encryptors[r.encrypt].Encrypt(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%s field %s: %w", actionNames[r.action], r.field, err)
	}
	n.encrypted++
	return ct, nil
}

func (s *Sanitizer) transform(r rule, text string, n *counts) (imprint.Value, error) {
	switch r.action {
	case actionEncrypt:
		ct, err := s.encrypt(r, []byte(text), n)
		if err != nil {
			return nil, err
		}
		return imprint.String(base64.StdEncoding.EncodeToString(ct)), nil
	case actionMask:
		n.masked++
		return imprint.String(s.maskers[r.mask].Mask(text)), nil
	case actionHash:
		h, err := s.hashers[r.hash].Hash([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("%s field %s: %w", actionNames[r.action], r.field, err)
		}
		n.hashed++
		return imprint.String(h), nil
	}
	n.redacted++
	return imprint.String(r.replacement), nil
}
