package types

// Field 一个字段名及其绑定值
type Field struct {
	Name  string
	Value interface{}
}

// Fields 有序的字段列表，顺序即 INSERT/UPDATE 的参数绑定顺序。
type Fields []Field

// Set 返回追加字段后的新列表，同名字段覆盖原值并保留原位置。原列表不变。
func (f Fields) Set(name string, value interface{}) Fields {
	for i := range f {
		if f[i].Name == name {
			out := make(Fields, len(f))
			copy(out, f)
			out[i].Value = value
			return out
		}
	}
	return append(f[:len(f):len(f)], Field{Name: name, Value: value})
}

// Names 按顺序返回字段名
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

// Values 按顺序返回绑定值
func (f Fields) Values() []interface{} {
	vals := make([]interface{}, len(f))
	for i, field := range f {
		vals[i] = field.Value
	}
	return vals
}
