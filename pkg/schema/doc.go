/*
Package schema derives schema.org TechArticle structured data from a post.

A post qualifies when its content holds at least one code block and at least
one steps block (the validity gate, see IsValid). The Extractor then collects
code samples and how-to steps from the flattened content tree and produces a
JSON-LD compatible TechArticle, or reports that there is nothing to emit.
*/
package schema
