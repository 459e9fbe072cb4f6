/*
Package domain contains the core models shared by every techseo component.

It defines the content tree of a post and the post itself, and is kept free of
I/O and persistence so that the schema extractor, the cross-post formatter and
the adapters can all depend on it.

# Key Entities

  - Block: a typed node of a post's content tree (paragraph, heading, code, ...).
  - Attributes: the open attribute bag carried by a block.
  - Post: the read-only snapshot of a post handed to the core.
  - LifecycleHooks: callbacks fired when structured data or cross-post text is produced.
*/
package domain
