// Command pubqr runs the pub ordering API and talks to it.
//
// Server side:
//
//	pubqr serve            # start HTTP (+ gRPC health when GRPC_PORT is set)
//	pubqr migrate          # run sql migrations
//	pubqr migrate:rollback
//	pubqr migrate:status
//	pubqr seed             # demo categories, products and orders
//	pubqr route:list       # list API routes
//
// Client side (--api http://localhost:8080):
//
//	pubqr menu --table T12 --q beer
//	pubqr order --table T12 <productId> <productId>
//	pubqr track --id <orderId>
//	pubqr board --pin 1234 --status pending
//	pubqr advance --pin 1234 <orderId>
package main
