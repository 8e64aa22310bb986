package reconcile

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
)

// Memo stores normalization results keyed by payload content. cache.Store
// satisfies it.
type Memo interface {
	GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error)
}

// canonicalJSON sorts map keys so equal payloads produce equal keys.
var canonicalJSON = jsoniter.ConfigCompatibleWithStandardLibrary

const memoKeySeparator = '\x1f'

// memoKey builds the content key for one normalization call. ok is false
// when the payload cannot be serialized; such calls bypass the memo.
func memoKey(kind string, raw rawdata.Payload, sport, league string) (string, bool) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(kind)
	_ = buf.WriteByte(memoKeySeparator)
	_, _ = buf.WriteString(sport)
	_ = buf.WriteByte(memoKeySeparator)
	_, _ = buf.WriteString(league)
	_ = buf.WriteByte(memoKeySeparator)

	stream := canonicalJSON.BorrowStream(buf)
	defer canonicalJSON.ReturnStream(stream)

	stream.WriteVal(map[string]any(raw))
	if stream.Error != nil {
		return "", false
	}
	if err := stream.Flush(); err != nil {
		return "", false
	}

	return buf.String(), true
}
