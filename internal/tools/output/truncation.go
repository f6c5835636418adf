package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var pathEscaper = strings.NewReplacer(`\`, `\\`, ".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)

// TruncateJSON shortens raw to at most maxBytes where it can.
//
// For an object the largest top level array loses trailing elements and the
// warning is added under WarningKey. A top level array is wrapped as
// {"Items": [...], "Truncation": {...}}. Documents without an array, or
// that are already small enough, are returned unchanged with a nil warning.
func TruncateJSON(raw []byte, maxBytes int) ([]byte, *TruncationWarning) {
	limit := EffectiveLimit(maxBytes)
	if limit == 0 || len(raw) <= limit {
		return raw, nil
	}

	root := gjson.ParseBytes(raw)
	switch {
	case root.IsArray():
		wrapped := []byte(`{"` + ItemsKey + `":` + root.Raw + `}`)
		out, warning := truncateField(wrapped, ItemsKey, root, limit)
		if warning == nil {
			return raw, nil
		}
		return out, warning
	case root.IsObject():
		field, arr := largestArray(root)
		if field == "" {
			return raw, nil
		}
		return truncateField(raw, field, arr, limit)
	default:
		return raw, nil
	}
}

func largestArray(root gjson.Result) (string, gjson.Result) {
	var (
		field string
		best  gjson.Result
	)
	root.ForEach(func(key, value gjson.Result) bool {
		if value.IsArray() && len(value.Raw) > len(best.Raw) {
			field = key.String()
			best = value
		}
		return true
	})
	return field, best
}

func truncateField(doc []byte, field string, arr gjson.Result, limit int) ([]byte, *TruncationWarning) {
	elems := arr.Array()
	total := len(elems)

	// The warning is sized with Shown == Total, which bounds the final one.
	probe, err := json.Marshal(newWarning(field, total, total))
	if err != nil {
		return doc, nil
	}
	overhead := len(`,"`+WarningKey+`":`) + len(probe)
	available := limit - (len(doc) - len(arr.Raw)) - overhead

	var b strings.Builder
	b.WriteByte('[')
	used := 2
	shown := 0
	for _, e := range elems {
		cost := len(e.Raw)
		if shown > 0 {
			cost++
		}
		if used+cost > available {
			break
		}
		if shown > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.Raw)
		used += cost
		shown++
	}
	b.WriteByte(']')

	if shown == total {
		return doc, nil
	}

	path := pathEscaper.Replace(field)
	out, err := sjson.SetRawBytes(doc, path, []byte(b.String()))
	if err != nil {
		return doc, nil
	}
	warning := newWarning(field, shown, total)
	out, err = sjson.SetBytes(out, WarningKey, warning)
	if err != nil {
		return doc, nil
	}
	return out, warning
}

func newWarning(field string, shown, total int) *TruncationWarning {
	return &TruncationWarning{
		Field:   field,
		Shown:   shown,
		Total:   total,
		Message: fmt.Sprintf("応答が大きすぎるため %s を切り詰めました。%d 件中 %d 件を表示しています。", field, total, shown),
	}
}
