package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/veryfi/veryfi-go/config"
	"github.com/veryfi/veryfi-go/pkg/client"
)

func main() {
	configFlag := flag.String("config", "", "config file")

	urlFlag := flag.String("url", "", "api url")
	clientIDFlag := flag.String("client-id", os.Getenv("VERYFI_CLIENT_ID"), "client id")
	secretFlag := flag.String("client-secret", os.Getenv("VERYFI_CLIENT_SECRET"), "client secret")
	usernameFlag := flag.String("username", os.Getenv("VERYFI_USERNAME"), "username")
	apiKeyFlag := flag.String("api-key", os.Getenv("VERYFI_API_KEY"), "api key")

	tagFlag := flag.String("tag", "", "filter documents by tag")
	queryFlag := flag.String("q", "", "filter documents by content")

	flag.Parse()

	ctx := context.Background()

	c, err := newClient(*configFlag, *urlFlag, *clientIDFlag, *secretFlag, *usernameFlag, *apiKeyFlag)

	if err != nil {
		fail(err)
	}

	switch flag.Arg(0) {
	case "process":
		document, err := c.Documents.ProcessFile(ctx, arg(1, "file path"), nil)

		if err != nil {
			fail(err)
		}

		printJson(document)

	case "url":
		document, err := c.Documents.ProcessURL(ctx, client.ProcessURLRequest{
			FileURL: arg(1, "file url"),
		})

		if err != nil {
			fail(err)
		}

		printJson(document)

	case "get":
		document, err := c.Documents.Get(ctx, intArg(1, "document id"))

		if err != nil {
			fail(err)
		}

		printJson(document)

	case "list":
		documents, err := c.Documents.List(ctx, &client.DocumentListOptions{
			Tag: *tagFlag,
			Q:   *queryFlag,
		})

		if err != nil {
			fail(err)
		}

		printJson(documents)

	case "delete":
		if err := c.Documents.Delete(ctx, intArg(1, "document id")); err != nil {
			fail(err)
		}

	case "w9":
		w9, err := c.W9s.ProcessFile(ctx, arg(1, "file path"), nil)

		if err != nil {
			fail(err)
		}

		printJson(w9)

	default:
		fmt.Fprintln(os.Stderr, "usage: veryfi [flags] process|url|get|list|delete|w9 [arg]")
		os.Exit(2)
	}
}

func newClient(configPath, url, clientID, secret, username, apiKey string) (*client.Client, error) {
	if configPath != "" {
		cfg, err := config.Parse(configPath)

		if err != nil {
			return nil, err
		}

		return cfg.Client(), nil
	}

	options := []client.RequestOption{}

	if url != "" {
		options = append(options, client.WithURL(url))
	}

	if secret != "" {
		options = append(options, client.WithClientSecret(secret))
	}

	return client.New(clientID, username, apiKey, options...), nil
}

func arg(i int, name string) string {
	val := flag.Arg(i)

	if val == "" {
		fail(fmt.Errorf("missing %s", name))
	}

	return val
}

func intArg(i int, name string) int {
	val, err := strconv.Atoi(arg(i, name))

	if err != nil {
		fail(fmt.Errorf("invalid %s: %w", name, err))
	}

	return val
}

func printJson(v any) {
	data, err := json.MarshalIndent(v, "", "  ")

	if err != nil {
		fail(err)
	}

	fmt.Println(string(data))
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
