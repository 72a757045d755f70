package dataset

import (
	"github.com/hangxie/parquet-go/v2/parquet"

	pschema "github.com/hangxie/parquet-preview/schema"
)

// KindOf classifies a top level schema node, annotations win over physical
// types.
func KindOf(node *pschema.SchemaNode) Kind {
	if len(node.Children) != 0 || node.Type == nil {
		return KindOther
	}

	if kind, found := kindOfLogicalType(node.LogicalType); found {
		return kind
	}
	if node.ConvertedType != nil {
		if kind, found := kindOfConvertedType(*node.ConvertedType); found {
			return kind
		}
	}

	switch *node.Type {
	case parquet.Type_BOOLEAN:
		return KindBoolean
	case parquet.Type_INT32, parquet.Type_INT64:
		return KindInteger
	case parquet.Type_INT96:
		return KindTimestamp
	case parquet.Type_FLOAT, parquet.Type_DOUBLE:
		return KindFloat
	case parquet.Type_BYTE_ARRAY, parquet.Type_FIXED_LEN_BYTE_ARRAY:
		return KindText
	}
	return KindOther
}

func kindOfLogicalType(logicalType *parquet.LogicalType) (Kind, bool) {
	if logicalType == nil {
		return KindOther, false
	}

	switch {
	case logicalType.IsSetTIMESTAMP(), logicalType.IsSetDATE():
		return KindTimestamp, true
	case logicalType.IsSetSTRING(), logicalType.IsSetENUM(), logicalType.IsSetUUID(), logicalType.IsSetJSON():
		return KindText, true
	case logicalType.IsSetDECIMAL():
		return KindFloat, true
	case logicalType.IsSetINTEGER():
		return KindInteger, true
	case logicalType.IsSetTIME(), logicalType.IsSetBSON(), logicalType.IsSetVARIANT(),
		logicalType.IsSetGEOMETRY(), logicalType.IsSetGEOGRAPHY():
		return KindOther, true
	}
	return KindOther, false
}

func kindOfConvertedType(convertedType parquet.ConvertedType) (Kind, bool) {
	switch convertedType {
	case parquet.ConvertedType_TIMESTAMP_MILLIS, parquet.ConvertedType_TIMESTAMP_MICROS, parquet.ConvertedType_DATE:
		return KindTimestamp, true
	case parquet.ConvertedType_UTF8, parquet.ConvertedType_ENUM, parquet.ConvertedType_JSON:
		return KindText, true
	case parquet.ConvertedType_DECIMAL:
		return KindFloat, true
	case parquet.ConvertedType_INT_8, parquet.ConvertedType_INT_16, parquet.ConvertedType_INT_32, parquet.ConvertedType_INT_64,
		parquet.ConvertedType_UINT_8, parquet.ConvertedType_UINT_16, parquet.ConvertedType_UINT_32, parquet.ConvertedType_UINT_64:
		return KindInteger, true
	case parquet.ConvertedType_TIME_MILLIS, parquet.ConvertedType_TIME_MICROS, parquet.ConvertedType_INTERVAL, parquet.ConvertedType_BSON:
		return KindOther, true
	}
	return KindOther, false
}
