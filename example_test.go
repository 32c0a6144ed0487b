package jsondom_test

import (
	"fmt"
	"io"
	"log"

	"github.com/jsondom/jsondom"
)

func ExampleWriter() {
	w := jsondom.NewBuffer()
	w.BeginObject()
	w.Name("verbose")
	w.Bool(false)
	w.Name("logLevel")
	w.Int(0)
	w.EndObject()
	fmt.Println(w.String())

	// Output:
	// {"verbose":false,"logLevel":0}
}

// Illegal calls fail immediately and leave the writer usable,
// so malformed output is impossible.
func ExampleWriter_stateMachine() {
	w := jsondom.NewBuffer()
	w.BeginObject()
	err := w.Int(42) // an object wants a name here, not a number
	fmt.Println(err)

	w.Name("answer")
	w.Int(42)
	w.EndObject()
	fmt.Println(w.String())

	// Output:
	// jsondom: cannot write number while expecting first object name or end of object
	// {"answer":42}
}

func ExampleExpand() {
	w := jsondom.NewBuffer(jsondom.WithIndent("  "))
	w.BeginObject()
	w.Name("name")
	w.String("svc")
	w.Name("ports")
	w.Ints([]int64{80, 443})
	w.EndObject()
	fmt.Println(w.String())

	// Output:
	// {
	//   "name": "svc",
	//   "ports": [
	//     80,
	//     443
	//   ]
	// }
}

func ExampleParse() {
	v, err := jsondom.ParseString(`{"name":"svc","retries":3}`)
	if err != nil {
		log.Fatal(err)
	}
	name, err := jsondom.GetAs(v, "name", jsondom.Value.Text)
	if err != nil {
		log.Fatal(err)
	}
	// Fallback thunks supply defaults for absent or null members.
	retries, err := jsondom.GetElse(v, "retries", jsondom.Value.Int64, func() int64 { return 1 })
	if err != nil {
		log.Fatal(err)
	}
	timeout, err := jsondom.GetElse(v, "timeout", jsondom.Value.Int64, func() int64 { return 30 })
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(name, retries, timeout)

	// Output:
	// svc 3 30
}

func ExampleParse_syntaxError() {
	_, err := jsondom.ParseString("{\n  \"a\": oops\n}")
	fmt.Println(err)

	// Output:
	// jsondom: invalid character 'o' at start of value at line 2, column 8
}

func ExampleParser_Read() {
	src := `{"event":"start"}
{"event":"stop"}`
	p := jsondom.NewParserBytes([]byte(src))
	for {
		v, err := p.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal(err)
		}
		event, _ := jsondom.GetAs(v, "event", jsondom.Value.Text)
		fmt.Println(event)
	}

	// Output:
	// start
	// stop
}

func ExampleMarshal() {
	e := endpoint{Host: "db.internal", Port: 5432, TLS: true}
	data, err := jsondom.Marshal(e)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))

	// Output:
	// {"host":"db.internal","port":5432,"tls":true}
}
