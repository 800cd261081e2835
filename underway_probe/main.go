package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
)

// Quick probe for the Nuyina underway WFS feed: prints the CSV header and
// the first N rows so the column layout can be inspected by hand.
func main() {
	count := 5
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil {
			fmt.Println(`{"error": "Please provide the number of rows as an argument"}`)
			return
		}
		count = n
	}

	params := url.Values{}
	params.Set("service", "WFS")
	params.Set("version", "2.0.0")
	params.Set("request", "GetFeature")
	params.Set("typeName", "underway:nuyina_underway")
	params.Set("outputFormat", "csv")
	params.Set("sortBy", "datetime")
	params.Set("count", strconv.Itoa(count))

	feedURL := "https://data.aad.gov.au/geoserver/underway/ows?" + params.Encode()

	resp, err := http.Get(feedURL)
	if err != nil {
		fmt.Printf("request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("feed returned status %d\n", resp.StatusCode)
		os.Exit(1)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("bad row: %v\n", err)
			continue
		}
		fmt.Println(record)
	}
}
