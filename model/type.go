package model

type Type interface {
	String() string
	IsAssignableFrom(other Type) bool
	IsFunction() bool
	IsConstructor() bool
	Signature() *Signature
	Members() Scope
}

type Primitive string

const (
	Number  Primitive = "number"
	String  Primitive = "string"
	Boolean Primitive = "boolean"
	Any     Primitive = "any"
	Void    Primitive = "void"
)

func (p Primitive) String() string {
	return string(p)
}

func (p Primitive) IsAssignableFrom(other Type) bool {
	if other == nil {
		return false
	}
	if p == Any {
		return true
	}
	o, ok := other.(Primitive)
	return ok && o == p
}

func (p Primitive) IsFunction() bool      { return false }
func (p Primitive) IsConstructor() bool   { return false }
func (p Primitive) Signature() *Signature { return nil }
func (p Primitive) Members() Scope        { return nil }

// Class is the instance type produced by a constructor.
type Class struct {
	Name    string
	Super   *Class
	members Scope
}

func NewClass(name string, super *Class) *Class {
	return &Class{Name: name, Super: super}
}

// SetMembers attaches the instance members. It exists separately from
// NewClass because members may refer back to the class itself.
func (c *Class) SetMembers(members Scope) {
	c.members = members
}

func (c *Class) String() string {
	return c.Name
}

func (c *Class) IsAssignableFrom(other Type) bool {
	o, ok := other.(*Class)
	if !ok {
		return false
	}
	for ; o != nil; o = o.Super {
		if o == c {
			return true
		}
	}
	return false
}

func (c *Class) IsFunction() bool      { return false }
func (c *Class) IsConstructor() bool   { return false }
func (c *Class) Signature() *Signature { return nil }
func (c *Class) Members() Scope        { return c.members }

type Namespace struct {
	Name  string
	Scope Scope
}

func (n *Namespace) String() string {
	return n.Name
}

func (n *Namespace) IsAssignableFrom(other Type) bool {
	o, ok := other.(*Namespace)
	return ok && o == n
}

func (n *Namespace) IsFunction() bool      { return false }
func (n *Namespace) IsConstructor() bool   { return false }
func (n *Namespace) Signature() *Signature { return nil }
func (n *Namespace) Members() Scope        { return n.Scope }

// Function is a callable value. Constructors are functions invoked with new;
// their signature returns the instance type.
type Function struct {
	Name        string
	Sig         *Signature
	Constructor bool
	Statics     Scope
}

func (f *Function) String() string {
	if f.Name != "" {
		return f.Name
	}
	return f.Sig.String()
}

func (f *Function) IsAssignableFrom(other Type) bool {
	o, ok := other.(*Function)
	return ok && o == f
}

func (f *Function) IsFunction() bool      { return !f.Constructor }
func (f *Function) IsConstructor() bool   { return f.Constructor }
func (f *Function) Signature() *Signature { return f.Sig }
func (f *Function) Members() Scope        { return f.Statics }

// ResultType is the type of the value produced by invoking t.
func ResultType(t Type) Type {
	if t == nil || t.Signature() == nil || t.Signature().Returns == nil {
		return Any
	}
	return t.Signature().Returns
}
