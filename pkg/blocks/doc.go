/*
Package blocks parses and walks the structured content of a post.

Serialized content uses HTML comment delimiters:

	<!-- wp:heading {"level":3} -->
	<h3>Install</h3>
	<!-- /wp:heading -->

	<!-- wp:forwp-seo/techarticle-step -->
	<div><!-- wp:paragraph --><p>Run it</p><!-- /wp:paragraph --></div>
	<!-- /wp:forwp-seo/techarticle-step -->

Parse turns that text into a tree of domain.Block values, Flatten linearizes a
tree in pre-order, and StripTags reduces a block's markup to plain text.
*/
package blocks
