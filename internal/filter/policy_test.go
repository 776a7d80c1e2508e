package filter_test

import (
	"testing"

	"github.com/temirov/projmap/internal/filter"
	"github.com/temirov/projmap/internal/types"
)

func TestPolicyShouldSkip(t *testing.T) {
	policy := filter.NewPolicy(types.FilterSpec{
		SkipFolders: []string{"node_modules", "target"},
		SkipFiles:   []string{".DS_Store", "target.txt"},
	})

	testCases := []struct {
		name        string
		entryName   string
		isDirectory bool
		expected    bool
	}{
		{name: "skipped folder", entryName: "node_modules", isDirectory: true, expected: true},
		{name: "folder name used by a file", entryName: "target", isDirectory: false, expected: false},
		{name: "skipped file", entryName: ".DS_Store", isDirectory: false, expected: true},
		{name: "file name used by a folder", entryName: "target.txt", isDirectory: true, expected: false},
		{name: "no partial match", entryName: "node_modules_backup", isDirectory: true, expected: false},
		{name: "case sensitive", entryName: "Target", isDirectory: true, expected: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if result := policy.ShouldSkip(testCase.entryName, testCase.isDirectory); result != testCase.expected {
				t.Fatalf("ShouldSkip(%q, %t) = %t, expected %t", testCase.entryName, testCase.isDirectory, result, testCase.expected)
			}
		})
	}
}

func TestPolicyMatchesType(t *testing.T) {
	testCases := []struct {
		name     string
		suffixes []string
		fileName string
		expected bool
	}{
		{name: "java suffix", suffixes: []string{".java"}, fileName: "Foo.java", expected: true},
		{name: "java suffix with inner dots", suffixes: []string{".java"}, fileName: "my.Bar.java", expected: true},
		{name: "case insensitive name", suffixes: []string{".java"}, fileName: "Foo.Java", expected: true},
		{name: "case insensitive suffix", suffixes: []string{".JAVA"}, fileName: "Foo.java", expected: true},
		{name: "missing dot", suffixes: []string{".java"}, fileName: "FooJava", expected: false},
		{name: "literal pom", suffixes: []string{"pom.xml"}, fileName: "pom.xml", expected: true},
		{name: "prefixed pom", suffixes: []string{"pom.xml"}, fileName: "child-pom.xml", expected: true},
		{name: "pom lookalike", suffixes: []string{"pom.xml"}, fileName: "pomx.xml", expected: false},
		{name: "trimmed suffix", suffixes: []string{"  .yml "}, fileName: "application.yml", expected: true},
		{name: "any of several", suffixes: []string{".java", ".yml"}, fileName: "a.yml", expected: true},
		{name: "empty list matches all", suffixes: nil, fileName: "anything.bin", expected: true},
		{name: "blank entries match nothing", suffixes: []string{" ", ""}, fileName: "anything.bin", expected: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			policy := filter.NewPolicy(types.FilterSpec{NecessaryTypes: testCase.suffixes})
			if result := policy.MatchesType(testCase.fileName); result != testCase.expected {
				t.Fatalf("MatchesType(%q) with %v = %t, expected %t", testCase.fileName, testCase.suffixes, result, testCase.expected)
			}
		})
	}
}
