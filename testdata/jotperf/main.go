package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/xdg-go/jot"
	"go.mongodb.org/mongo-driver/bson"
)

// Input should be a stream of top-level objects separated by white
// space, using the common subset of the permissive dialect and standard
// JSON so that every decoder under test accepts it.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: jotperf <json file>")
	}
	inputFile := os.Args[1]
	jsonData, err := os.ReadFile(inputFile)
	if err != nil {
		log.Fatal(err)
	}
	benchJot(jsonData)
	benchJotBSON(jsonData)
	benchJSONIter(jsonData)
	benchNaive(jsonData)
}

func benchJot(input []byte) {
	dec := jot.NewDecoder(bytes.NewReader(input))

	start := time.Now()
	for {
		v, err := dec.Decode()
		if err != nil {
			if err == io.EOF {
				break
			}
			log.Fatal(err)
		}
		_ = v
	}
	elapsed := time.Since(start)
	reportResult("jot", len(input), elapsed)
}

func benchJotBSON(input []byte) {
	dec := jot.NewDecoder(bytes.NewReader(input))

	start := time.Now()
	for {
		v, err := dec.Decode()
		if err != nil {
			if err == io.EOF {
				break
			}
			log.Fatal(err)
		}
		if v.Type() != jot.TypeObject {
			log.Fatal("BSON conversion requires top-level objects")
		}
		buf, err := bson.Marshal(jot.ToBSON(v))
		if err != nil {
			log.Fatal(err)
		}
		_ = buf
	}
	elapsed := time.Since(start)
	reportResult("jot json->bson", len(input), elapsed)
}

func benchJSONIter(input []byte) {
	dec := jsoniter.NewDecoder(bytes.NewReader(input))

	start := time.Now()
	for dec.More() {
		var v interface{}
		err := dec.Decode(&v)
		if err != nil {
			log.Fatal(err)
		}
		_ = v
	}
	elapsed := time.Since(start)
	reportResult("jsoniter", len(input), elapsed)
}

func benchNaive(input []byte) {
	dec := json.NewDecoder(bytes.NewReader(input))

	start := time.Now()
	for dec.More() {
		var m map[string]interface{}
		err := dec.Decode(&m)
		if err != nil {
			log.Fatal(err)
		}
		buf, err := bson.Marshal(m)
		if err != nil {
			log.Fatal(err)
		}
		_ = buf
	}
	elapsed := time.Since(start)
	reportResult("naive json->bson", len(input), elapsed)
}

func reportResult(label string, size int, elapsed time.Duration) {
	throughput := float64(size) / float64(elapsed.Microseconds())
	fmt.Printf("%15s %.2f MB/s\n", label, throughput)
}
