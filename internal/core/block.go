package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Block is one tagged, keyed unit of page content. The payload stays raw
// until a renderer decodes it into the shape it understands.
type Block struct {
	Type string
	Key  string
	Raw  json.RawMessage
}

func (b Block) Decode(dst any) error {
	if len(b.Raw) == 0 {
		return fmt.Errorf("decode %s block %q: empty payload", b.Type, b.Key)
	}
	if err := json.Unmarshal(b.Raw, dst); err != nil {
		return fmt.Errorf("decode %s block %q: %w", b.Type, b.Key, err)
	}
	return nil
}

func (b Block) MarshalJSON() ([]byte, error) {
	if len(b.Raw) > 0 {
		return b.Raw, nil
	}
	return json.Marshal(map[string]string{"_type": b.Type, "_key": b.Key})
}

func (b *Block) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return ErrInvalidBlocks
	}
	*b = blockFromResult(gjson.ParseBytes(data))
	return nil
}

// Blocks is an ordered page-builder sequence. Order is significant.
type Blocks []Block

func DecodeBlocks(raw []byte) (Blocks, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, ErrInvalidBlocks
	}

	result := gjson.ParseBytes(trimmed)
	if result.Type == gjson.Null {
		return nil, nil
	}
	if !result.IsArray() {
		return nil, fmt.Errorf("%w: expected an array, got %s", ErrInvalidBlocks, result.Type)
	}

	items := result.Array()
	blocks := make(Blocks, 0, len(items))
	for _, item := range items {
		blocks = append(blocks, blockFromResult(item))
	}
	return blocks, nil
}

func blockFromResult(item gjson.Result) Block {
	return Block{
		Type: item.Get("_type").String(),
		Key:  item.Get("_key").String(),
		Raw:  json.RawMessage(item.Raw),
	}
}

func (bs *Blocks) UnmarshalJSON(data []byte) error {
	blocks, err := DecodeBlocks(data)
	if err != nil {
		return err
	}
	*bs = blocks
	return nil
}

func (bs Blocks) Tags() []string {
	tags := make([]string, len(bs))
	for i, b := range bs {
		tags[i] = b.Type
	}
	return tags
}

func (bs Blocks) IndexOf(key string) int {
	for i, b := range bs {
		if b.Key == key {
			return i
		}
	}
	return -1
}

type BlockError struct {
	Index int
	Type  string
	Key   string
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d (%s %q): %v", e.Index, e.Type, e.Key, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// Validate reports every block without a type or key and every key that
// repeats within the sequence. Keys only need to be unique per sequence.
func (bs Blocks) Validate() error {
	var errs []error
	seen := make(map[string]int, len(bs))
	for i, b := range bs {
		if b.Type == "" {
			errs = append(errs, &BlockError{Index: i, Type: b.Type, Key: b.Key, Err: ErrMissingType})
		}
		if b.Key == "" {
			errs = append(errs, &BlockError{Index: i, Type: b.Type, Key: b.Key, Err: ErrMissingKey})
			continue
		}
		if first, ok := seen[b.Key]; ok {
			errs = append(errs, &BlockError{
				Index: i,
				Type:  b.Type,
				Key:   b.Key,
				Err:   fmt.Errorf("%w: first used at index %d", ErrDuplicateKey, first),
			})
			continue
		}
		seen[b.Key] = i
	}
	return errors.Join(errs...)
}
