package schema

import (
	"strings"
	"time"

	"github.com/hangxie/parquet-go/v2/common"
	"github.com/hangxie/parquet-go/v2/parquet"
	"github.com/hangxie/parquet-go/v2/reader"
)

type SchemaNode struct {
	parquet.SchemaElement
	Children   []*SchemaNode `json:"children,omitempty"`
	InNamePath []string      `json:"-"`
	ExNamePath []string      `json:"-"`
}

// NewSchemaTree rebuilds the flat schema element list of reader into a tree,
// node names are external names.
func NewSchemaTree(reader *reader.ParquetReader) *SchemaNode {
	schemas := reader.SchemaHandler.SchemaElements
	root := &SchemaNode{
		SchemaElement: *schemas[0],
		Children:      []*SchemaNode{},
		InNamePath:    []string{schemas[0].Name},
		ExNamePath:    strings.Split(reader.SchemaHandler.InPathToExPath[schemas[0].Name], common.PAR_GO_PATH_DELIMITER)[:1],
	}
	stack := []*SchemaNode{root}

	for pos := 1; len(stack) > 0; {
		node := stack[len(stack)-1]
		if len(node.Children) < int(node.GetNumChildren()) {
			childNode := &SchemaNode{
				SchemaElement: *schemas[pos],
				Children:      []*SchemaNode{},
			}

			// append() does not always return new slice, so we need to copy the old slice
			childNode.InNamePath = make([]string, len(node.InNamePath)+1)
			copy(childNode.InNamePath, node.InNamePath)
			childNode.InNamePath[len(node.InNamePath)] = schemas[pos].Name

			inPathKey := strings.Join(childNode.InNamePath, common.PAR_GO_PATH_DELIMITER)
			childNode.ExNamePath = strings.Split(reader.SchemaHandler.InPathToExPath[inPathKey], common.PAR_GO_PATH_DELIMITER)

			node.Children = append(node.Children, childNode)
			stack = append(stack, childNode)
			pos++
		} else {
			stack = stack[:len(stack)-1]
			if len(node.Children) == 0 {
				node.Children = nil
			}
		}
	}

	queue := []*SchemaNode{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = append(queue[1:], node.Children...)
		node.Name = node.ExNamePath[len(node.ExNamePath)-1]
	}
	return root
}

// TypeName returns physical type, followed by logical or converted type when
// there is one, e.g. "INT64/TIMESTAMP" or "BYTE_ARRAY/UTF8".
func (s *SchemaNode) TypeName() string {
	name := typeStr(s.SchemaElement)
	if s.Type == nil {
		return name
	}
	if annotation := logicalTypeStr(s.LogicalType); annotation != "" {
		return name + "/" + annotation
	}
	if s.ConvertedType != nil {
		return name + "/" + s.ConvertedType.String()
	}
	return name
}

// TimeUnit returns the duration of one unit of an integer encoded timestamp
// or date, 0 means the node is neither.
func (s *SchemaNode) TimeUnit() time.Duration {
	if s.LogicalType != nil {
		switch {
		case s.LogicalType.IsSetDATE():
			return 24 * time.Hour
		case s.LogicalType.IsSetTIMESTAMP():
			return timeUnitDuration(s.LogicalType.TIMESTAMP.Unit)
		}
	}

	if s.ConvertedType != nil {
		switch *s.ConvertedType {
		case parquet.ConvertedType_DATE:
			return 24 * time.Hour
		case parquet.ConvertedType_TIMESTAMP_MILLIS:
			return time.Millisecond
		case parquet.ConvertedType_TIMESTAMP_MICROS:
			return time.Microsecond
		}
	}
	return 0
}

// IsRequired tells if the node can never be null.
func (s *SchemaNode) IsRequired() bool {
	return s.RepetitionType == nil || *s.RepetitionType == parquet.FieldRepetitionType_REQUIRED
}

func typeStr(se parquet.SchemaElement) string {
	if se.Type != nil {
		return se.Type.String()
	}
	if se.ConvertedType != nil {
		return se.ConvertedType.String()
	}
	return "STRUCT"
}

func logicalTypeStr(logicalType *parquet.LogicalType) string {
	if logicalType == nil {
		return ""
	}

	switch {
	case logicalType.IsSetBSON():
		return "BSON"
	case logicalType.IsSetDATE():
		return "DATE"
	case logicalType.IsSetDECIMAL():
		return "DECIMAL"
	case logicalType.IsSetGEOGRAPHY():
		return "GEOGRAPHY"
	case logicalType.IsSetGEOMETRY():
		return "GEOMETRY"
	case logicalType.IsSetVARIANT():
		return "VARIANT"
	case logicalType.IsSetSTRING():
		return "STRING"
	case logicalType.IsSetTIME():
		return "TIME"
	case logicalType.IsSetTIMESTAMP():
		return "TIMESTAMP"
	case logicalType.IsSetUUID():
		return "UUID"
	}
	return ""
}

func timeUnitDuration(timeUnit *parquet.TimeUnit) time.Duration {
	switch {
	case timeUnit == nil:
		return 0
	case timeUnit.IsSetNANOS():
		return time.Nanosecond
	case timeUnit.IsSetMICROS():
		return time.Microsecond
	case timeUnit.IsSetMILLIS():
		return time.Millisecond
	}
	return 0
}
