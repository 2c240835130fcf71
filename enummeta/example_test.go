package enummeta_test

import (
	"fmt"

	"typemeta/enummeta"
	"typemeta/meta"
	"typemeta/typecache"
)

type Weekday uint8

const (
	Monday Weekday = 1 << iota
	Tuesday
	Wednesday
	Weekend Weekday = 1 << 6
)

func Example() {
	reg := meta.NewRegistry()
	days := meta.RegisterEnum([]meta.EnumValue[Weekday]{
		{Name: "Monday", Value: Monday, Description: "Mon"},
		{Name: "Tuesday", Value: Tuesday, Description: "Tue"},
		{Name: "Wednesday", Value: Wednesday, Description: "Wed"},
		{Name: "Weekend", Value: Weekend, Description: "Sat+Sun"},
	}, meta.InRegistry(reg), meta.Flags())

	engine := enummeta.NewEngine(typecache.New(), enummeta.WithReflector(meta.NewReflector(reg)))

	desc, _ := engine.Describe(days, Monday|Weekend, " / ")
	fmt.Println(desc)

	v, _ := engine.ParseDelimited(days, "Tuesday, Wed, Friday", enummeta.DefaultDelimiter)
	fmt.Println(v == Tuesday|Wednesday)

	_, err := engine.ParseDelimited(days, "Friday", enummeta.DefaultDelimiter, enummeta.Strict())
	fmt.Println(err)
	// Output:
	// Mon / Sat+Sun
	// true
	// unknown enum member: [Weekday] [unknown-member] unknown member "Friday" (did you mean Monday?)
}
